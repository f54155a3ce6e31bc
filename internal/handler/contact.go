package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/waitlist-backend/internal/domain"
	"github.com/msomdec/waitlist-backend/internal/service"
)

// ContactHandler handles waitlist signup requests.
type ContactHandler struct {
	signup *service.SignupService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(signup *service.SignupService) *ContactHandler {
	return &ContactHandler{signup: signup}
}

// HandleSubscribe processes a JSON waitlist signup.
// POST /api/v1/contact/subscribe
// Request:  {"name":"...","email":"...","product_name":"..."}
// Response: 201 {"success":true,"message":"..."}
//
// A mail-provider failure after the row is committed answers with the
// provider's status code; the signup itself stays persisted.
func (h *ContactHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		ProductName string `json:"product_name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.signup.Subscribe(r.Context(), req.Name, req.Email, req.ProductName)
	if err != nil {
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) {
			slog.Error("send confirmation email", "error", err, "email", req.Email)
			writeError(w, provErr.StatusCode, provErr.Message)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("subscribe to waitlist", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": result.Success,
		"message": result.Message,
	})
}
