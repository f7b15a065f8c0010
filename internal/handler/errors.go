package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"tourguide/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps domain errors to status codes. Anything unknown is
// logged with op and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		WriteError(w, models.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrInvalidToken), errors.Is(err, models.ErrUnknownSubject):
		WriteError(w, models.ErrInvalidToken.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrDuplicateName):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrReferentialConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("%s: %v", op, err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		message := fmt.Sprintf("поле %s не прошло проверку %s", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			message = fmt.Sprintf("%s=%s", message, fe.Param())
		}
		WriteError(w, message, http.StatusBadRequest)
		return
	}

	WriteError(w, "Неверные данные", http.StatusBadRequest)
}
