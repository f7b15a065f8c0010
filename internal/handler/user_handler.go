package handlers

import (
	"net/http"
	"time"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetMe returns the profile of the caller.
func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	writeSuccess(w, UserResponse{
		ID:        user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, http.StatusOK)
}
