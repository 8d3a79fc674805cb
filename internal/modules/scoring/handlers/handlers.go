// Package handlers provides HTTP handlers for player scoring operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/snapshots"
)

// maxBatchSize caps one batch scoring request.
const maxBatchSize = 1000

// Evaluator scores players with full club context.
type Evaluator interface {
	ScorePlayer(p domain.Player) (scoring.ScoreResult, error)
	RankPool(players []domain.Player, cb progress.Callback) []scoring.ScoreResult
}

// SnapshotReader serves persisted score snapshots.
type SnapshotReader interface {
	ScoresByGameweek(gameweek int) ([]snapshots.Snapshot, error)
	PlayerHistory(playerID int) ([]snapshots.Snapshot, error)
}

// Handler handles scoring HTTP requests
type Handler struct {
	evaluator Evaluator
	snapshots SnapshotReader
	cfg       scoring.Config
	log       zerolog.Logger
}

// NewHandler creates a new scoring handler
func NewHandler(evaluator Evaluator, snapshotReader SnapshotReader, cfg scoring.Config, log zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		snapshots: snapshotReader,
		cfg:       cfg,
		log:       log.With().Str("handler", "scoring").Logger(),
	}
}

// BatchRequest carries the players of one pool scoring request.
type BatchRequest struct {
	Players []domain.Player `json:"players"`
}

// BatchResponse returns the ranked pool.
type BatchResponse struct {
	Results []scoring.ScoreResult `json:"results"`
	Scored  int                   `json:"scored"`
	Skipped int                   `json:"skipped"`
}

// WeightsResponse exposes the active composite weight configuration.
type WeightsResponse struct {
	PositionWeights map[domain.Position]scoring.Weights `json:"position_weights"`
	DefaultWeights  scoring.Weights                     `json:"default_weights"`
	Lookahead       int                                 `json:"lookahead_gameweeks"`
}

// HandleScore handles POST /api/scoring/score
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var player domain.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.evaluator.ScorePlayer(player)
	if err != nil {
		h.log.Warn().Err(err).Str("player", player.Name).Msg("Failed to score player")
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleBatch handles POST /api/scoring/batch
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Players) == 0 {
		h.writeError(w, http.StatusBadRequest, "players list is empty")
		return
	}
	if len(req.Players) > maxBatchSize {
		h.writeError(w, http.StatusBadRequest, "batch exceeds maximum of "+strconv.Itoa(maxBatchSize)+" players")
		return
	}

	results := h.evaluator.RankPool(req.Players, nil)

	h.writeJSON(w, http.StatusOK, BatchResponse{
		Results: results,
		Scored:  len(results),
		Skipped: len(req.Players) - len(results),
	})
}

// HandleCurrentWeights handles GET /api/scoring/weights/current
func (h *Handler) HandleCurrentWeights(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, WeightsResponse{
		PositionWeights: h.cfg.PositionWeights,
		DefaultWeights:  h.cfg.DefaultWeights,
		Lookahead:       h.cfg.LookaheadGameweeks,
	})
}

// HandleSnapshotsByGameweek handles GET /api/scoring/snapshots/{gameweek}
func (h *Handler) HandleSnapshotsByGameweek(w http.ResponseWriter, r *http.Request) {
	gameweek, err := strconv.Atoi(chi.URLParam(r, "gameweek"))
	if err != nil || gameweek < 1 {
		h.writeError(w, http.StatusBadRequest, "gameweek must be a positive integer")
		return
	}

	rows, err := h.snapshots.ScoresByGameweek(gameweek)
	if err != nil {
		h.log.Error().Err(err).Int("gameweek", gameweek).Msg("Failed to load snapshots")
		h.writeError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"gameweek":  gameweek,
		"count":     len(rows),
		"snapshots": rows,
	})
}

// HandlePlayerHistory handles GET /api/scoring/snapshots/player/{id}
func (h *Handler) HandlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || playerID < 1 {
		h.writeError(w, http.StatusBadRequest, "player id must be a positive integer")
		return
	}

	rows, err := h.snapshots.PlayerHistory(playerID)
	if err != nil {
		h.log.Error().Err(err).Int("player_id", playerID).Msg("Failed to load player history")
		h.writeError(w, http.StatusInternalServerError, "failed to load player history")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"player_id": playerID,
		"count":     len(rows),
		"history":   rows,
	})
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
