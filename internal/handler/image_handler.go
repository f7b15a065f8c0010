package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"
	"tourguide/internal/config"
	"tourguide/internal/models"

	"github.com/gorilla/mux"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

func toImageResponse(image models.Image) ImageResponse {
	return ImageResponse{
		ID:        image.ImageID,
		PostID:    image.PostID,
		URL:       image.ImageURL,
		CreatedAt: image.CreatedAt,
	}
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	images, err := h.ImageService.ListImages(r.Context(), postID)
	if err != nil {
		writeServiceError(w, "list images", err)
		return
	}

	response := make([]ImageResponse, 0, len(images))
	for _, image := range images {
		response = append(response, toImageResponse(image))
	}

	writeSuccess(w, response, http.StatusOK)
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	if err := h.checkPostOwner(r, postID); err != nil {
		writeServiceError(w, "upload image", err)
		return
	}

	maxSize := h.maxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Файл image обязателен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		WriteError(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		WriteError(w, "Не удалось прочитать файл", http.StatusBadRequest)
		return
	}

	contentType := http.DetectContentType(sniff[:n])
	if !allowedImageTypes[contentType] {
		WriteError(w, "Допустимы только изображения jpeg, png, gif, webp", http.StatusBadRequest)
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		WriteError(w, "Не удалось прочитать файл", http.StatusBadRequest)
		return
	}

	image, err := h.ImageService.AddImage(r.Context(), postID, header.Filename, contentType, file, header.Size)
	if err != nil {
		writeServiceError(w, "upload image", err)
		return
	}

	writeSuccess(w, toImageResponse(*image), http.StatusCreated)
}

// maxUploadSize falls back to the default when no limit is configured.
func (h *Handlers) maxUploadSize() int64 {
	if h.Cfg == nil || h.Cfg.MaxUploadSize <= 0 {
		return config.DefaultMaxUploadSize
	}
	return h.Cfg.MaxUploadSize
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	imageID, ok := parseID(mux.Vars(r)["imageId"])
	if !ok {
		WriteError(w, "Изображение не найдено", http.StatusNotFound)
		return
	}

	if err := h.checkPostOwner(r, postID); err != nil {
		writeServiceError(w, "delete image", err)
		return
	}

	if err := h.ImageService.DeleteImage(r.Context(), postID, imageID); err != nil {
		writeServiceError(w, "delete image", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
