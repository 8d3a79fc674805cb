package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all backtest and metrics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/backtest", func(r chi.Router) {
		r.Post("/run", h.HandleRun)
		r.Post("/compare", h.HandleCompare)
		r.Get("/runs", h.HandleListRuns)
		r.Get("/runs/{id}", h.HandleGetRun)
		r.Get("/runs/{id}/report", h.HandleRunReport)
		r.Get("/strategies", h.HandleStrategies)
	})

	r.Route("/metrics", func(r chi.Router) {
		r.Post("/performance", h.HandlePerformanceMetrics)
	})
}
