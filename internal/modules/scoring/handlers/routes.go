package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scoring routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scoring", func(r chi.Router) {
		r.Post("/score", h.HandleScore)
		r.Post("/batch", h.HandleBatch)
		r.Get("/weights/current", h.HandleCurrentWeights)
		r.Get("/snapshots/{gameweek}", h.HandleSnapshotsByGameweek)
		r.Get("/snapshots/player/{id}", h.HandlePlayerHistory)
	})
}
