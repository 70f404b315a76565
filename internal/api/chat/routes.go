package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chats", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Patch("/", h.Rename)
		r.Delete("/", h.Delete)

		r.Get("/{chat_id}", h.History)
		r.Get("/{chat_id}/export", h.Export)
	})
}
