package scoring

import (
	"github.com/aristath/gaffer/internal/domain"
)

// SubScores holds the five composite scores, each on a 0-10 scale.
type SubScores struct {
	Quality      float64 `json:"quality"`
	Form         float64 `json:"form"`
	TeamMomentum float64 `json:"team_momentum"`
	Fixture      float64 `json:"fixture"`
	Value        float64 `json:"value"`
}

// Weighted blends the sub-scores with the given weights.
func (s SubScores) Weighted(w Weights) float64 {
	return s.Quality*w.Quality +
		s.Form*w.Form +
		s.TeamMomentum*w.TeamMomentum +
		s.Fixture*w.Fixture +
		s.Value*w.Value
}

// Values returns the sub-scores as a slice, in declaration order.
func (s SubScores) Values() []float64 {
	return []float64{s.Quality, s.Form, s.TeamMomentum, s.Fixture, s.Value}
}

// ScoreRange is the expected band around a final score given the
// confidence in the inputs.
type ScoreRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ScoreResult is the full output of the impact score calculation,
// including every intermediate the final number was built from.
type ScoreResult struct {
	PlayerID   int             `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Position   domain.Position `json:"position"`

	SubScores        SubScores `json:"sub_scores"`
	BaseScore        float64   `json:"base_score"`
	InteractionBonus float64   `json:"interaction_bonus"`
	RiskPenalty      float64   `json:"risk_penalty"`

	// Confidence is the multiplier applied to the adjusted base,
	// between ConfidenceFloor and ConfidenceCeiling.
	Confidence      float64         `json:"confidence"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`

	// FinalScore is the master impact score on the 0-15 scale.
	FinalScore    float64    `json:"final_score"`
	ExpectedRange ScoreRange `json:"expected_range"`

	// Weights records the composite weight set used, for auditability.
	Weights Weights `json:"weights"`
}
