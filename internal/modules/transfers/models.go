// Package transfers implements the constrained transfer search: pool
// candidates are filtered by strategy, swap combinations are enumerated
// under budget and squad rules, and the survivors are ranked by expected
// points gain.
package transfers

import (
	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// Scorer provides master-score evaluations for squad players and
// candidate pools. Pool scoring preserves input order and drops players
// that failed to score; the implementation logs those failures.
type Scorer interface {
	ScorePlayer(p domain.Player) (scoring.ScoreResult, error)
	ScorePool(players []domain.Player, cb progress.Callback) []scoring.ScoreResult
}

// Candidate is a pool player annotated with their master score and
// transfer-risk read.
type Candidate struct {
	Player     domain.Player `json:"player"`
	Score      float64       `json:"score"`
	Confidence float64       `json:"confidence"`
	Risk       float64       `json:"risk"`
}

// Transfer is one recommended swap inside a combination.
type Transfer struct {
	Out          domain.Player `json:"player_out"`
	In           domain.Player `json:"player_in"`
	ExpectedGain float64       `json:"expected_points_gain"`
	Confidence   float64       `json:"confidence_score"`
	Risk         float64       `json:"risk_score"`
	Reasoning    string        `json:"reasoning"`
}

// Combination is a set of transfers recommended together, ranked by the
// summed expected gain of its swaps.
type Combination struct {
	Transfers    []Transfer `json:"transfers"`
	TotalGain    float64    `json:"total_expected_gain"`
	Confidence   float64    `json:"total_confidence"`
	Risk         float64    `json:"total_risk"`
	BudgetImpact float64    `json:"budget_impact"`
	Reasoning    string     `json:"reasoning"`
}

// OptimizeRequest carries one transfer search invocation.
type OptimizeRequest struct {
	Squad              domain.Squad
	Pool               []domain.Player
	Budget             float64
	TransfersAvailable int
	Strategy           Strategy
}
