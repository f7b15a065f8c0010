package handlers

import (
	"encoding/json"
	"net/http"
	"tourguide/internal/models"
)

type CreateTagsRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=10,dive,min=2,max=50,tagname"`
}

type TagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount int64  `json:"postCount"`
}

func toTagResponses(tags []models.Tag) []TagResponse {
	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, TagResponse{
			ID:        tag.TagID,
			Name:      tag.Name,
			PostCount: tag.PostCount,
		})
	}
	return response
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.GetTags(r.Context())
	if err != nil {
		writeServiceError(w, "list tags", err)
		return
	}

	writeSuccess(w, toTagResponses(tags), http.StatusOK)
}

func (h *Handlers) CreateTags(w http.ResponseWriter, r *http.Request) {
	var req CreateTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	tags, err := h.TagService.CreateTags(r.Context(), req.Names)
	if err != nil {
		writeServiceError(w, "create tags", err)
		return
	}

	writeSuccess(w, toTagResponses(tags), http.StatusCreated)
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := pathID(r, "id")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.TagService.DeleteTag(r.Context(), tagID); err != nil {
		writeServiceError(w, "delete tag", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
