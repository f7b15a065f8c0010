package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Middleware func(http.Handler) http.Handler

// NewRouter registers every route. requireAuth guards the mutating routes,
// authLimit throttles signup and login.
func NewRouter(h *Handlers, requireAuth, authLimit Middleware) *mux.Router {
	r := mux.NewRouter()

	protected := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(handler)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.Handle("/auth/signup", authLimit(http.HandlerFunc(h.Signup))).Methods(http.MethodPost)
	api.Handle("/auth/login", authLimit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)

	api.Handle("/auth/check", protected(h.CheckAuth)).Methods(http.MethodGet)
	api.Handle("/auth/user_id", protected(h.GetUserID)).Methods(http.MethodGet)

	api.Handle("/user/me", protected(h.GetMe)).Methods(http.MethodGet)
	api.Handle("/users/me", protected(h.GetMe)).Methods(http.MethodGet)

	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.Handle("/categories", protected(h.CreateCategory)).Methods(http.MethodPost)
	api.Handle("/categories/{id}", protected(h.DeleteCategory)).Methods(http.MethodDelete)

	api.HandleFunc("/tags", h.ListTags).Methods(http.MethodGet)
	api.Handle("/tags", protected(h.CreateTags)).Methods(http.MethodPost)
	api.Handle("/tags/{id}", protected(h.DeleteTag)).Methods(http.MethodDelete)

	// drafts must be registered before /posts/{id}
	api.Handle("/posts/drafts", protected(h.ListDrafts)).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	api.Handle("/posts", protected(h.CreatePost)).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.Handle("/posts/{id}", protected(h.UpdatePost)).Methods(http.MethodPut)
	api.Handle("/posts/{id}", protected(h.DeletePost)).Methods(http.MethodDelete)

	api.HandleFunc("/posts/{id}/images", h.ListImages).Methods(http.MethodGet)
	api.Handle("/posts/{id}/images", protected(h.UploadImage)).Methods(http.MethodPost)
	api.Handle("/posts/{id}/images/{imageId}", protected(h.DeleteImage)).Methods(http.MethodDelete)

	return r
}
