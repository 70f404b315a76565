package ask

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the question answering route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/ask", h.Ask)
}
