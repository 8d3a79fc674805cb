// Package scorers implements the score calculators: four position
// scorers, five composite scorers, and the master impact scorer that
// combines them.
package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
)

// PositionScorer scores a player against the expectations of their
// position. Implementations are stateless and safe for concurrent use.
type PositionScorer interface {
	Score(p domain.Player) PositionScore
}

// PositionScore represents the result of position-specific scoring
type PositionScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// positionScorers is the dispatch table from position to scorer.
// Built once at init so an unsupported position is a lookup miss,
// never a runtime construction failure.
var positionScorers = map[domain.Position]PositionScorer{
	domain.Goalkeeper: NewGoalkeeperScorer(),
	domain.Defender:   NewDefenderScorer(),
	domain.Midfielder: NewMidfielderScorer(),
	domain.Forward:    NewForwardScorer(),
}

// ForPosition returns the scorer for a position. Unknown positions get
// the midfielder scorer as the most general profile; ok reports whether
// the position had a dedicated scorer.
func ForPosition(pos domain.Position) (PositionScorer, bool) {
	if s, ok := positionScorers[pos]; ok {
		return s, true
	}
	return positionScorers[domain.Midfielder], false
}

// rampScore maps a value onto the 0-10 scale with a knee at good and a
// plateau at excellent: linear 0-7 below good, linear 7-10 between the
// anchors, capped at 10 above excellent.
func rampScore(value, good, excellent float64) float64 {
	if value >= excellent {
		return 10.0
	}
	if value >= good {
		ratio := (value - good) / (excellent - good)
		return 7.0 + ratio*3.0
	}
	return math.Min(7.0, value/good*7.0)
}

// clampScore bounds a composite score to the 0-10 scale.
func clampScore(score float64) float64 {
	return math.Max(0.0, math.Min(10.0, score))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
