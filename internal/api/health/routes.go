package health

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the health check route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health", h.Check)
}
