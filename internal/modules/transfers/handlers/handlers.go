// Package handlers provides HTTP handlers for transfer optimization.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/transfers"
)

// Handler handles transfer HTTP requests
type Handler struct {
	optimizer *transfers.Optimizer
	checker   *transfers.Checker
	log       zerolog.Logger
}

// NewHandler creates a new transfer handler
func NewHandler(optimizer *transfers.Optimizer, checker *transfers.Checker, log zerolog.Logger) *Handler {
	return &Handler{
		optimizer: optimizer,
		checker:   checker,
		log:       log.With().Str("handler", "transfers").Logger(),
	}
}

// OptimizeRequest carries one transfer search invocation. Strategy
// defaults to balanced, transfers available to one.
type OptimizeRequest struct {
	Squad              domain.Squad    `json:"squad"`
	Pool               []domain.Player `json:"pool"`
	Budget             float64         `json:"budget"`
	TransfersAvailable int             `json:"transfers_available"`
	Strategy           string          `json:"strategy"`
}

// OptimizeResponse returns the ranked combinations.
type OptimizeResponse struct {
	Combinations []transfers.Combination `json:"combinations"`
	Count        int                     `json:"count"`
	Strategy     transfers.Strategy      `json:"strategy"`
}

// SingleRequest asks for standalone swap recommendations.
type SingleRequest struct {
	Squad  domain.Squad    `json:"squad"`
	Pool   []domain.Player `json:"pool"`
	Budget float64         `json:"budget"`
}

// SingleResponse returns standalone swaps ranked by expected gain.
type SingleResponse struct {
	Transfers []transfers.Transfer `json:"transfers"`
	Count     int                  `json:"count"`
}

// ValidateRequest asks for a squad rule check.
type ValidateRequest struct {
	Squad domain.Squad `json:"squad"`
}

// HandleOptimize handles POST /api/transfers/optimize
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	strategy, err := transfers.ParseStrategy(req.Strategy)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TransfersAvailable <= 0 {
		req.TransfersAvailable = 1
	}

	combos, err := h.optimizer.Optimize(transfers.OptimizeRequest{
		Squad:              req.Squad,
		Pool:               req.Pool,
		Budget:             req.Budget,
		TransfersAvailable: req.TransfersAvailable,
		Strategy:           strategy,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Transfer optimization rejected")
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, OptimizeResponse{
		Combinations: combos,
		Count:        len(combos),
		Strategy:     strategy,
	})
}

// HandleSingle handles POST /api/transfers/single
func (h *Handler) HandleSingle(w http.ResponseWriter, r *http.Request) {
	var req SingleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	recommendations, err := h.optimizer.SingleTransfers(req.Squad, req.Pool, req.Budget)
	if err != nil {
		h.log.Warn().Err(err).Msg("Single transfer search rejected")
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, SingleResponse{
		Transfers: recommendations,
		Count:     len(recommendations),
	})
}

// HandleValidate handles POST /api/transfers/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Squad.Players) == 0 {
		h.writeError(w, http.StatusBadRequest, "squad is empty")
		return
	}

	h.writeJSON(w, http.StatusOK, h.checker.ValidateSquad(req.Squad))
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
