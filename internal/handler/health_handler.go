package handlers

import (
	"log"
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.HealthService.Check(r.Context())
	if err != nil {
		log.Printf("health check: %v", err)
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, status, http.StatusOK)
}
