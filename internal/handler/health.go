package handler

import (
	"net/http"

	"github.com/msomdec/waitlist-backend/internal/service"
)

// HealthHandler serves the health and root endpoints.
type HealthHandler struct {
	health *service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(health *service.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// HandleHealth reports service health.
// GET /api/health
// Fresh:  {"message":"OK","timestamp":...}
// Cached: {"message":"OK (cached)","time_remaining":...}
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.health.Check()
	if status.Fresh {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "OK",
			"timestamp": status.Timestamp.Unix(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "OK (cached)",
		"time_remaining": int(status.TimeRemaining.Seconds()),
	})
}

// HandleRoot answers liveness pokes at the root path.
// GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "WaitingList backend up and running",
	})
}
