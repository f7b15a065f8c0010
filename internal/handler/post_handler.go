package handlers

import (
	"encoding/json"
	"net/http"
	"time"
	"tourguide/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PostRequest struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Content    string   `json:"content" validate:"required,min=10,max=50000"`
	CategoryID string   `json:"categoryId" validate:"required,id"`
	TagIDs     []string `json:"tagIds" validate:"max=10,dive,id"`
	Status     string   `json:"status" validate:"required,oneof=DRAFT PUBLISHED"`
	Latitude   *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type AuthorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TagSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Status      string          `json:"status"`
	ReadingTime int             `json:"readingTime"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Author      AuthorResponse  `json:"author"`
	Category    CategorySummary `json:"category"`
	Tags        []TagSummary    `json:"tags"`
	Images      []ImageResponse `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toPostResponse(post *models.Post) PostResponse {
	tags := make([]TagSummary, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, TagSummary{ID: tag.TagID, Name: tag.Name})
	}

	var images []ImageResponse
	for _, image := range post.Images {
		images = append(images, toImageResponse(image))
	}

	return PostResponse{
		ID:          post.PostID,
		Title:       post.Title,
		Content:     post.Content,
		Status:      string(post.Status),
		ReadingTime: post.ReadingTime,
		Latitude:    post.Latitude,
		Longitude:   post.Longitude,
		Author:      AuthorResponse{ID: post.AuthorID, Name: post.AuthorName},
		Category:    CategorySummary{ID: post.CategoryID, Name: post.CategoryName},
		Tags:        tags,
		Images:      images,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func toPostResponses(posts []models.Post) []PostResponse {
	response := make([]PostResponse, 0, len(posts))
	for i := range posts {
		response = append(response, toPostResponse(&posts[i]))
	}
	return response
}

// pathID returns the uuid path variable. A malformed id cannot exist, so
// callers treat !ok as not found.
func pathID(r *http.Request, name string) (string, bool) {
	return parseID(mux.Vars(r)[name])
}

func parseID(value string) (string, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *Handlers) decodePostRequest(w http.ResponseWriter, r *http.Request) (*PostRequest, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return nil, false
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return nil, false
	}

	req.CategoryID, _ = parseID(req.CategoryID)
	for i, tagID := range req.TagIDs {
		req.TagIDs[i], _ = parseID(tagID)
	}

	return &req, true
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	categoryID := query.Get("categoryId")
	if categoryID != "" {
		id, ok := parseID(categoryID)
		if !ok {
			WriteError(w, "Категория не найдена", http.StatusNotFound)
			return
		}
		categoryID = id
	}

	tagID := query.Get("tagId")
	if tagID != "" {
		id, ok := parseID(tagID)
		if !ok {
			WriteError(w, "Тег не найден", http.StatusNotFound)
			return
		}
		tagID = id
	}

	posts, err := h.PostService.ListPublished(r.Context(), categoryID, tagID)
	if err != nil {
		writeServiceError(w, "list posts", err)
		return
	}

	writeSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) ListDrafts(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	posts, err := h.PostService.ListDrafts(r.Context(), identity)
	if err != nil {
		writeServiceError(w, "list drafts", err)
		return
	}

	writeSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}

	writeSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	req, ok := h.decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), identity, models.CreatePostRequest{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
		Status:     models.PostStatus(req.Status),
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
	})
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}

	writeSuccess(w, toPostResponse(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	req, ok := h.decodePostRequest(w, r)
	if !ok {
		return
	}

	if err := h.checkPostOwner(r, postID); err != nil {
		writeServiceError(w, "update post", err)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, models.UpdatePostRequest{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
		Status:     models.PostStatus(req.Status),
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
	})
	if err != nil {
		writeServiceError(w, "update post", err)
		return
	}

	writeSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	if err := h.checkPostOwner(r, postID); err != nil {
		writeServiceError(w, "delete post", err)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		writeServiceError(w, "delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkPostOwner rejects callers other than the author when
// POST_OWNERSHIP_CHECK is on. It is a no-op otherwise.
func (h *Handlers) checkPostOwner(r *http.Request, postID string) error {
	if h.Cfg == nil || !h.Cfg.PostOwnershipCheck {
		return nil
	}

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		return models.ErrInvalidToken
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		return err
	}

	if post.AuthorID != identity.UserID {
		return models.ErrForbidden
	}

	return nil
}
