package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/transfers"
)

// stubScorer returns canned final scores by player id. Players without
// an entry fail to score and drop out of pool results.
type stubScorer struct {
	scores map[int]float64
}

func (s *stubScorer) ScorePlayer(p domain.Player) (scoring.ScoreResult, error) {
	score, ok := s.scores[p.ID]
	if !ok {
		return scoring.ScoreResult{}, fmt.Errorf("no score for player %d", p.ID)
	}
	return scoring.ScoreResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Position:   p.Position,
		Confidence: 1.0,
		FinalScore: score,
	}, nil
}

func (s *stubScorer) ScorePool(players []domain.Player, _ progress.Callback) []scoring.ScoreResult {
	results := make([]scoring.ScoreResult, 0, len(players))
	for _, p := range players {
		result, err := s.ScorePlayer(p)
		if err != nil {
			continue
		}
		results = append(results, result)
	}
	return results
}

// testSquad is a legal 15-player squad: 2 GK, 5 DEF, 5 MID, 3 FWD across
// eight clubs, worth 88.0 in total.
func testSquad() domain.Squad {
	return domain.Squad{Players: []domain.Player{
		{ID: 101, Name: "Keeper One", Team: "Arsenal", Position: domain.Goalkeeper, Price: 5.5},
		{ID: 102, Name: "Keeper Two", Team: "Brentford", Position: domain.Goalkeeper, Price: 4.0},
		{ID: 111, Name: "Back One", Team: "Arsenal", Position: domain.Defender, Price: 6.0},
		{ID: 112, Name: "Back Two", Team: "Chelsea", Position: domain.Defender, Price: 5.5},
		{ID: 113, Name: "Back Three", Team: "Everton", Position: domain.Defender, Price: 5.0},
		{ID: 114, Name: "Back Four", Team: "Fulham", Position: domain.Defender, Price: 4.5},
		{ID: 115, Name: "Back Five", Team: "Luton", Position: domain.Defender, Price: 4.0},
		{ID: 121, Name: "Mid One", Team: "Arsenal", Position: domain.Midfielder, Price: 8.0},
		{ID: 122, Name: "Mid Two", Team: "Chelsea", Position: domain.Midfielder, Price: 7.0},
		{ID: 123, Name: "Mid Three", Team: "Everton", Position: domain.Midfielder, Price: 6.0},
		{ID: 124, Name: "Mid Four", Team: "Newcastle", Position: domain.Midfielder, Price: 5.5},
		{ID: 125, Name: "Mid Five", Team: "Villa", Position: domain.Midfielder, Price: 5.0},
		{ID: 131, Name: "Striker One", Team: "Newcastle", Position: domain.Forward, Price: 9.0},
		{ID: 132, Name: "Striker Two", Team: "Villa", Position: domain.Forward, Price: 7.5},
		{ID: 133, Name: "Striker Three", Team: "Luton", Position: domain.Forward, Price: 5.5},
	}}
}

// testScores gives every squad player a score plus the pool target, with
// Mid Five the weakest midfielder.
func testScores() map[int]float64 {
	return map[int]float64{
		101: 4.0, 102: 3.0,
		111: 5.0, 112: 4.5, 113: 4.0, 114: 3.5, 115: 2.8,
		121: 5.5, 122: 5.0, 123: 4.5, 124: 3.0, 125: 2.0,
		131: 6.0, 132: 4.0, 133: 2.5,
		201: 8.0,
	}
}

func testPool() []domain.Player {
	return []domain.Player{
		{ID: 201, Name: "Target Mid", Team: "Spurs", Position: domain.Midfielder, Price: 7.5},
	}
}

// setupTestHandler creates a handler with a real optimizer and checker
// around a stub scorer.
func setupTestHandler() *Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	checker := transfers.NewChecker(transfers.DefaultSquadRules(), transfers.DefaultTransferRules())
	optimizer := transfers.NewOptimizer(&stubScorer{scores: testScores()}, checker, logger)
	return NewHandler(optimizer, checker, logger)
}

func newTransfersRouter(handler *Handler) *chi.Mux {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func postJSON(handler http.HandlerFunc, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleOptimize(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, OptimizeRequest{
		Squad:              testSquad(),
		Pool:               testPool(),
		Budget:             30.0,
		TransfersAvailable: 1,
		Strategy:           "balanced",
	})
	w := postJSON(handler.HandleOptimize, "/api/transfers/optimize", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response OptimizeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, transfers.StrategyBalanced, response.Strategy)
	require.Equal(t, 1, response.Count)
	require.Len(t, response.Combinations, 1)

	best := response.Combinations[0]
	require.Len(t, best.Transfers, 1)
	assert.Equal(t, 201, best.Transfers[0].In.ID)
	assert.Equal(t, 125, best.Transfers[0].Out.ID, "weakest midfielder goes out")
	assert.InDelta(t, 6.0, best.TotalGain, 1e-9)
}

func TestHandleOptimize_DefaultsStrategyAndAllowance(t *testing.T) {
	handler := setupTestHandler()

	// No strategy and no transfer allowance: balanced, one swap.
	body := mustJSON(t, OptimizeRequest{
		Squad:  testSquad(),
		Pool:   testPool(),
		Budget: 30.0,
	})
	w := postJSON(handler.HandleOptimize, "/api/transfers/optimize", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response OptimizeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, transfers.StrategyBalanced, response.Strategy)
	for _, combo := range response.Combinations {
		assert.Len(t, combo.Transfers, 1)
	}
}

func TestHandleOptimize_InvalidBody(t *testing.T) {
	handler := setupTestHandler()

	w := postJSON(handler.HandleOptimize, "/api/transfers/optimize", []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "invalid request body")
}

func TestHandleOptimize_UnknownStrategy(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, OptimizeRequest{
		Squad:    testSquad(),
		Pool:     testPool(),
		Budget:   30.0,
		Strategy: "yolo",
	})
	w := postJSON(handler.HandleOptimize, "/api/transfers/optimize", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "unknown strategy")
}

func TestHandleOptimize_EmptySquad(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, OptimizeRequest{Pool: testPool(), Budget: 30.0})
	w := postJSON(handler.HandleOptimize, "/api/transfers/optimize", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleSingle(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, SingleRequest{
		Squad:  testSquad(),
		Pool:   testPool(),
		Budget: 4.0,
	})
	w := postJSON(handler.HandleSingle, "/api/transfers/single", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SingleResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, 201, response.Transfers[0].In.ID)
	assert.InDelta(t, 6.0, response.Transfers[0].ExpectedGain, 1e-9)
}

func TestHandleSingle_EmptySquad(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, SingleRequest{Pool: testPool(), Budget: 4.0})
	w := postJSON(handler.HandleSingle, "/api/transfers/single", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleValidate(t *testing.T) {
	handler := setupTestHandler()

	body := mustJSON(t, ValidateRequest{Squad: testSquad()})
	w := postJSON(handler.HandleValidate, "/api/transfers/validate", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var result transfers.ValidationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 15, result.Stats.TotalPlayers)
	assert.InDelta(t, 88.0, result.Stats.TotalCost, 1e-9)
}

func TestHandleValidate_BrokenSquad(t *testing.T) {
	handler := setupTestHandler()

	// Drop a defender: fourteen players fails the squad size rule.
	squad := testSquad()
	squad.Players = append(squad.Players[:2], squad.Players[3:]...)

	body := mustJSON(t, ValidateRequest{Squad: squad})
	w := postJSON(handler.HandleValidate, "/api/transfers/validate", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var result transfers.ValidationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestHandleValidate_EmptySquad(t *testing.T) {
	handler := setupTestHandler()

	w := postJSON(handler.HandleValidate, "/api/transfers/validate", mustJSON(t, ValidateRequest{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouteIntegration(t *testing.T) {
	router := newTransfersRouter(setupTestHandler())

	optimizeBody := mustJSON(t, OptimizeRequest{Squad: testSquad(), Pool: testPool(), Budget: 30.0})
	singleBody := mustJSON(t, SingleRequest{Squad: testSquad(), Pool: testPool(), Budget: 4.0})
	validateBody := mustJSON(t, ValidateRequest{Squad: testSquad()})

	tests := []struct {
		name           string
		method         string
		path           string
		body           []byte
		expectedStatus int
	}{
		{"optimize transfers", "POST", "/transfers/optimize", optimizeBody, http.StatusOK},
		{"single transfers", "POST", "/transfers/single", singleBody, http.StatusOK},
		{"validate squad", "POST", "/transfers/validate", validateBody, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != nil {
				body = bytes.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
