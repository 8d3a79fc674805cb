package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/gaffer/internal/domain"
)

type stubHistory struct {
	scores []float64
}

func (s stubHistory) RecentHistory(domain.Player) []float64 {
	return s.scores
}

func TestRecentFormScore_Bands(t *testing.T) {
	tests := []struct {
		description string
		history     []float64
		want        float64
	}{
		{"empty window", nil, 0.0},
		{"all blanks", []float64{0, 0, 0, 0, 0, 0}, 0.0},
		{"steady excellence plateaus", []float64{8, 8, 8, 8, 8, 8}, 10.0},
		{"steady good form", []float64{6, 6, 6, 6, 6, 6}, 8.5}, // 7 + (6-5)/2*3
		{"steady moderate form", []float64{4, 4, 4, 4, 4, 4}, 5.0},
		{"steady poor form", []float64{2, 2, 2, 2, 2, 2}, 2.0}, // 2/3*3
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.InDelta(t, tt.want, recentFormScore(tt.history), 1e-9)
		})
	}
}

func TestRecentFormScore_WeightsRecentGamesMore(t *testing.T) {
	improving := recentFormScore([]float64{2, 3, 4, 5, 6, 7})
	declining := recentFormScore([]float64{7, 6, 5, 4, 3, 2})

	assert.Greater(t, improving, declining,
		"same scores in reverse order must favour the player trending up")
}

func TestFormConsistencyScore(t *testing.T) {
	assert.InDelta(t, 5.0, formConsistencyScore([]float64{6}), 1e-9, "one game is no evidence")
	assert.InDelta(t, 5.0, formConsistencyScore([]float64{0, 0, 0, 6}), 1e-9, "blanks are excluded")
	assert.InDelta(t, 10.0, formConsistencyScore([]float64{6, 6, 6, 6}), 1e-9, "zero variance is perfect")

	// Five quiet games and one explosion: cv ~= 1.853, inside the
	// penalised band, 10 - 0.353*3.
	skewed := formConsistencyScore([]float64{1, 1, 1, 1, 1, 30})
	assert.InDelta(t, 8.942, skewed, 1e-3)
	assert.Greater(t, formConsistencyScore([]float64{5, 6, 5, 6, 5, 6}), skewed)
}

func TestFormTrendScore(t *testing.T) {
	assert.InDelta(t, 5.0, formTrendScore([]float64{4, 5}), 1e-9, "short windows are neutral")
	assert.InDelta(t, 5.0, formTrendScore([]float64{0, 6, 0, 7}), 1e-9, "two played games are not a trend")

	rising := formTrendScore([]float64{2, 3, 4, 5, 6, 7})
	assert.InDelta(t, 9.0, rising, 1e-9, "unit slope lands at 8 + min(2, slope)")

	falling := formTrendScore([]float64{7, 6, 5, 4, 3, 2})
	assert.InDelta(t, 1.0, falling, 1e-9)

	flat := formTrendScore([]float64{5, 5, 5, 5, 5, 5})
	assert.InDelta(t, 5.0, flat, 1e-9)
}

func TestFormScorer_BlendsComponents(t *testing.T) {
	fs := NewFormScorer(stubHistory{scores: []float64{6, 6, 6, 6, 6, 6}})

	score := fs.Score(domain.Player{ID: 1})

	// Recent 8.5, consistency 10 (zero variance), trend 5 (flat),
	// blended (8.5*0.6 + 10*0.4 + 5*0.2) / 1.2.
	assert.InDelta(t, 8.417, score.Score, 1e-3)
	assert.InDelta(t, 8.5, score.Components["recent"], 1e-3)
	assert.InDelta(t, 10.0, score.Components["consistency"], 1e-3)
	assert.InDelta(t, 5.0, score.Components["trend"], 1e-3)
}
