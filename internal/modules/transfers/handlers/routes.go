package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all transfer routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/transfers", func(r chi.Router) {
		r.Post("/optimize", h.HandleOptimize)
		r.Post("/single", h.HandleSingle)
		r.Post("/validate", h.HandleValidate)
	})
}
