// Package handlers provides HTTP handlers for backtest runs and
// prediction-quality metrics.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/backtest"
	"github.com/aristath/gaffer/internal/modules/snapshots"
	"github.com/aristath/gaffer/internal/modules/transfers"
)

// RunStore persists completed runs and serves them back.
type RunStore interface {
	SaveRun(result backtest.Result) error
	Runs(limit int) ([]snapshots.RunSummary, error)
	Run(id string) (*backtest.Result, error)
}

// Handler handles backtest HTTP requests
type Handler struct {
	engine   *backtest.Engine
	store    RunStore
	defaults backtest.Config
	log      zerolog.Logger
}

// NewHandler creates a new backtest handler. The defaults seed request
// fields the caller leaves out.
func NewHandler(engine *backtest.Engine, store RunStore, defaults backtest.Config, log zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		store:    store,
		defaults: defaults,
		log:      log.With().Str("handler", "backtest").Logger(),
	}
}

// RunRequest describes one backtest invocation. Omitted knobs fall back
// to the configured defaults; pointers distinguish "absent" from an
// explicit zero.
type RunRequest struct {
	StartGameweek int    `json:"start_gameweek"`
	EndGameweek   int    `json:"end_gameweek"`
	Strategy      string `json:"strategy"`

	InitialSquad domain.Squad    `json:"initial_squad"`
	Pool         []domain.Player `json:"pool,omitempty"`

	Budget              *float64 `json:"budget,omitempty"`
	MaxTransfersPerWeek *int     `json:"max_transfers_per_week,omitempty"`
	MinConfidence       *float64 `json:"min_confidence,omitempty"`
	MaxRisk             *float64 `json:"max_risk,omitempty"`
	Seed                *int64   `json:"seed,omitempty"`
}

// CompareRequest runs the same configuration once per strategy.
type CompareRequest struct {
	RunRequest
	Strategies []string `json:"strategies"`
}

// CompareEntry summarizes one strategy's run. The full result is
// persisted and retrievable by run id.
type CompareEntry struct {
	RunID             string  `json:"run_id"`
	TotalPoints       float64 `json:"total_points"`
	AveragePoints     float64 `json:"average_points"`
	TotalTransfers    int     `json:"total_transfers"`
	TotalTransferHits int     `json:"total_transfer_hits"`
	FinalSquadValue   float64 `json:"final_squad_value"`
}

// StrategyInfo describes one optimization strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MetricsRequest carries parallel predicted and actual series.
type MetricsRequest struct {
	Predicted []float64 `json:"predicted"`
	Actual    []float64 `json:"actual"`
}

// HandleRun handles POST /api/backtest/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg, err := h.buildConfig(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.Run(cfg)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveRun(result); err != nil {
		h.log.Error().Err(err).Str("run_id", result.RunID).Msg("Failed to persist backtest run")
		h.writeError(w, http.StatusInternalServerError, "failed to persist run")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleCompare handles POST /api/backtest/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	strategies := make([]transfers.Strategy, 0, len(req.Strategies))
	for _, raw := range req.Strategies {
		strategy, err := transfers.ParseStrategy(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategies = append(strategies, strategy)
	}
	if len(strategies) == 0 {
		strategies = transfers.Strategies
	}

	cfg, err := h.buildConfig(req.RunRequest)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.engine.CompareStrategies(cfg, strategies)
	if len(results) == 0 {
		h.writeError(w, http.StatusUnprocessableEntity, "no strategy produced a run")
		return
	}

	comparison := make(map[transfers.Strategy]CompareEntry, len(results))
	for strategy, result := range results {
		if err := h.store.SaveRun(result); err != nil {
			h.log.Error().Err(err).Str("run_id", result.RunID).Msg("Failed to persist comparison run")
		}
		comparison[strategy] = CompareEntry{
			RunID:             result.RunID,
			TotalPoints:       result.TotalPoints,
			AveragePoints:     result.AveragePoints,
			TotalTransfers:    result.TotalTransfers,
			TotalTransferHits: result.TotalTransferHits,
			FinalSquadValue:   result.FinalSquadValue,
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"comparison": comparison,
		"strategies": strategies,
	})
}

// HandleListRuns handles GET /api/backtest/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.store.Runs(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list backtest runs")
		h.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// HandleGetRun handles GET /api/backtest/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleRunReport handles GET /api/backtest/runs/{id}/report
func (h *Handler) HandleRunReport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(backtest.FormatReport(*result))); err != nil {
		h.log.Error().Err(err).Msg("Failed to write report response")
	}
}

// HandleStrategies handles GET /api/backtest/strategies
func (h *Handler) HandleStrategies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": []StrategyInfo{
			{
				Name:        string(transfers.StrategyAggressive),
				Description: "Chases high-ceiling targets and accepts risk; only large expected gains are recommended.",
			},
			{
				Name:        string(transfers.StrategyBalanced),
				Description: "Default posture: solid targets at moderate risk with a modest gain floor.",
			},
			{
				Name:        string(transfers.StrategyConservative),
				Description: "Screens hard on risk and confidence; recommends only safe, well-supported moves.",
			},
		},
		"default": string(transfers.StrategyBalanced),
	})
}

// HandlePerformanceMetrics handles POST /api/metrics/performance
func (h *Handler) HandlePerformanceMetrics(w http.ResponseWriter, r *http.Request) {
	var req MetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Predicted) == 0 {
		h.writeError(w, http.StatusBadRequest, "predicted series is empty")
		return
	}

	metrics, err := backtest.Compute(req.Predicted, req.Actual)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": metrics,
		"samples": len(req.Predicted),
	})
}

// loadRun fetches the run in the id URL parameter, writing the error
// response itself when the run cannot be served.
func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*backtest.Result, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "run id is required")
		return nil, false
	}

	result, err := h.store.Run(id)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("Failed to load backtest run")
		h.writeError(w, http.StatusInternalServerError, "failed to load run")
		return nil, false
	}
	if result == nil {
		h.writeError(w, http.StatusNotFound, "run not found")
		return nil, false
	}
	return result, true
}

// buildConfig overlays the request onto the configured defaults.
func (h *Handler) buildConfig(req RunRequest) (backtest.Config, error) {
	cfg := h.defaults

	if req.StartGameweek != 0 {
		cfg.StartGameweek = req.StartGameweek
	}
	if req.EndGameweek != 0 {
		cfg.EndGameweek = req.EndGameweek
	}

	strategy, err := transfers.ParseStrategy(req.Strategy)
	if err != nil {
		return backtest.Config{}, err
	}
	cfg.Strategy = strategy

	cfg.InitialSquad = req.InitialSquad
	cfg.Pool = req.Pool

	if req.Budget != nil {
		cfg.Budget = *req.Budget
	}
	if req.MaxTransfersPerWeek != nil {
		cfg.MaxTransfersPerWeek = *req.MaxTransfersPerWeek
	}
	if req.MinConfidence != nil {
		cfg.MinConfidence = *req.MinConfidence
	}
	if req.MaxRisk != nil {
		cfg.MaxRisk = *req.MaxRisk
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}

	return cfg, nil
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
