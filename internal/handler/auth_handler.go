package handlers

import (
	"encoding/json"
	"net/http"
	"tourguide/internal/service"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.AuthService.CreateUser(r.Context(), req.Email, req.Password, req.Name); err != nil {
		writeServiceError(w, "signup", err)
		return
	}

	// signing up does not log in, so authenticate right away
	h.issueToken(w, r, req.Email, req.Password, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.issueToken(w, r, req.Email, req.Password, http.StatusOK)
}

func (h *Handlers) issueToken(w http.ResponseWriter, r *http.Request, email, password string, statusCode int) {
	identity, err := h.AuthService.Authenticate(r.Context(), email, password)
	if err != nil {
		writeServiceError(w, "authenticate", err)
		return
	}

	token, err := h.AuthService.GenerateToken(identity)
	if err != nil {
		writeServiceError(w, "generate token", err)
		return
	}

	writeSuccess(w, AuthResponse{Token: token, ExpiresIn: service.TokenExpiresIn}, statusCode)
}

// CheckAuth answers 200 with an empty body for a valid bearer token.
func (h *Handlers) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentIdentity(w, r); !ok {
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetUserID returns the caller's id as a bare JSON string.
func (h *Handlers) GetUserID(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}
	writeSuccess(w, identity.UserID, http.StatusOK)
}
