package workers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name            string
		numWorkers      int
		expectedWorkers int
	}{
		{"positive workers", 5, 5},
		{"zero workers defaults to 10", 0, 10},
		{"negative workers defaults to 10", -1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.numWorkers)
			assert.Equal(t, tt.expectedWorkers, pool.numWorkers)
		})
	}
}

func TestScoreBatch_EmptyPlayers(t *testing.T) {
	pool := NewWorkerPool(2)
	results := pool.ScoreBatch(nil, func(p domain.Player) (scoring.ScoreResult, error) {
		return scoring.ScoreResult{}, nil
	}, nil)
	assert.Empty(t, results)
}

func TestScoreBatch_PreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4)

	players := make([]domain.Player, 20)
	for i := range players {
		players[i] = domain.Player{ID: i + 1, Name: fmt.Sprintf("Player %d", i+1)}
	}

	// Derive the score from the player id so order mixups are visible.
	score := func(p domain.Player) (scoring.ScoreResult, error) {
		return scoring.ScoreResult{PlayerID: p.ID, FinalScore: float64(p.ID)}, nil
	}

	results := pool.ScoreBatch(players, score, nil)
	require.Len(t, results, 20)

	for i, outcome := range results {
		assert.Equal(t, players[i].ID, outcome.Player.ID,
			"Result %d should correspond to player %d", i, i)
		assert.Equal(t, players[i].ID, outcome.Result.PlayerID)
		assert.InDelta(t, float64(players[i].ID), outcome.Result.FinalScore, 1e-9)
	}
}

func TestScoreBatch_WithProgress(t *testing.T) {
	pool := NewWorkerPool(2)

	players := []domain.Player{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}

	var progressCalls []struct {
		current int
		total   int
		message string
	}
	callback := func(current, total int, message string) {
		progressCalls = append(progressCalls, struct {
			current int
			total   int
			message string
		}{current, total, message})
	}

	score := func(p domain.Player) (scoring.ScoreResult, error) {
		return scoring.ScoreResult{PlayerID: p.ID}, nil
	}

	results := pool.ScoreBatch(players, score, callback)

	assert.Len(t, results, 3)
	require.Len(t, progressCalls, 3, "Progress should be called for each completed evaluation")

	// The collector invokes the callback, so counts climb monotonically.
	for i, call := range progressCalls {
		assert.Equal(t, i+1, call.current)
		assert.Equal(t, 3, call.total, "Total should equal number of players")
	}
}

func TestScoreBatch_NilProgress(t *testing.T) {
	pool := NewWorkerPool(2)

	players := []domain.Player{{ID: 1, Name: "A"}}
	score := func(p domain.Player) (scoring.ScoreResult, error) {
		return scoring.ScoreResult{PlayerID: p.ID}, nil
	}

	// Should not panic with nil callback
	assert.NotPanics(t, func() {
		pool.ScoreBatch(players, score, nil)
	})
}

func TestScoreBatch_CarriesFailures(t *testing.T) {
	pool := NewWorkerPool(2)

	players := []domain.Player{
		{ID: 1, Name: "Good"},
		{ID: 0, Name: "Broken"},
		{ID: 3, Name: "Also good"},
	}

	scoreErr := errors.New("unusable record")
	score := func(p domain.Player) (scoring.ScoreResult, error) {
		if p.ID <= 0 {
			return scoring.ScoreResult{}, scoreErr
		}
		return scoring.ScoreResult{PlayerID: p.ID}, nil
	}

	results := pool.ScoreBatch(players, score, nil)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, scoreErr)
	assert.NoError(t, results[2].Err)
}
