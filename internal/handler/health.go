package handler

import (
	"net/http"

	"github.com/vannaai/vannaai/internal/models"
)

const serviceName = "vanna-ai"

// HealthHandler handles GET /health. It is a pure liveness probe: it performs
// no downstream calls, so it answers ok even when the database or the LLM
// provider is unreachable.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}
