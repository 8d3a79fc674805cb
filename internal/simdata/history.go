package simdata

import (
	"math"
	"math/rand"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// FormHistory simulates a player's recent per-gameweek scores around
// their published form figure.
type FormHistory struct {
	seed int64
}

// NewFormHistory creates a seeded form history generator.
func NewFormHistory(seed int64) *FormHistory {
	return &FormHistory{seed: seed}
}

// RecentHistory returns a fixed window of simulated scores, oldest
// first. Players with fewer appearances than the window get zeros for
// the missing games; unplayed players get an all-zero window.
func (h *FormHistory) RecentHistory(p domain.Player) []float64 {
	if p.GamesPlayed == 0 {
		return make([]float64, scoring.FormHistoryLength)
	}

	rng := rand.New(rand.NewSource(SubSeed(h.seed, "form-history", p.ID)))
	history := make([]float64, 0, scoring.FormHistoryLength)

	games := p.GamesPlayed
	if games > scoring.FormHistoryLength {
		games = scoring.FormHistoryLength
	}
	for i := 0; i < games; i++ {
		noise := rng.NormFloat64()
		history = append(history, math.Max(0, p.Form+noise))
	}
	for len(history) < scoring.FormHistoryLength {
		history = append(history, 0.0)
	}

	return history
}
