package handlers

import (
	"encoding/json"
	"net/http"
	"tourguide/internal/models"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount int64  `json:"postCount"`
}

func toCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.CategoryID,
		Name:      category.Name,
		PostCount: category.PostCount,
	}
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, "list categories", err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}

	writeSuccess(w, response, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	category, err := h.CategoryService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, "create category", err)
		return
	}

	writeSuccess(w, toCategoryResponse(*category), http.StatusCreated)
}

// DeleteCategory answers 204 for an unknown or malformed id as well.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.CategoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		writeServiceError(w, "delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
