// Package backtest replays a transfer strategy over a range of
// gameweeks: each week the squad's realized points are recorded, the
// optimizer proposes moves, and hits are charged for extra transfers.
// Run results feed the performance metrics and the text report.
package backtest

import (
	"errors"
	"fmt"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/transfers"
)

// Default run posture, matching the usual FPL cadence: two moves a week
// considered, a small cash reserve, and moderate decision gates.
const (
	DefaultBudget              = 2.0
	DefaultMaxTransfersPerWeek = 2
	DefaultMinConfidence       = 0.6
	DefaultMaxRisk             = 0.4

	// DefaultSeed keeps simulated gameweeks reproducible between runs.
	DefaultSeed = 42
)

// PerformanceSource yields one player's realized outcome for a gameweek.
type PerformanceSource interface {
	PlayerPerformance(p domain.Player, gameweek int) domain.GameweekPerformance
}

// Config describes one backtest run.
type Config struct {
	StartGameweek int                `json:"start_gameweek"`
	EndGameweek   int                `json:"end_gameweek"`
	Strategy      transfers.Strategy `json:"strategy"`
	InitialSquad  domain.Squad       `json:"initial_squad"`

	// Pool is the set of players the optimizer may bring in. An empty
	// pool simply means the squad is held all run.
	Pool []domain.Player `json:"pool,omitempty"`

	Budget              float64 `json:"budget"`
	MaxTransfersPerWeek int     `json:"max_transfers_per_week"`

	// Recommendations below MinConfidence or above MaxRisk are not
	// acted on even when the optimizer ranks them first.
	MinConfidence float64 `json:"min_confidence"`
	MaxRisk       float64 `json:"max_risk"`

	// Seed drives the simulated realized performances. The same seed
	// replays identical gameweeks, which is what makes strategy
	// comparisons meaningful. Zero draws a fresh seed and records it
	// on the run's config.
	Seed int64 `json:"seed"`

	// Performance overrides the seeded simulator with externally
	// supplied realized data when set.
	Performance PerformanceSource `json:"-"`
}

// DefaultConfig returns the standard run posture over a full season.
// Callers override the gameweek range, squad and pool.
func DefaultConfig() Config {
	return Config{
		StartGameweek:       1,
		EndGameweek:         38,
		Strategy:            transfers.StrategyBalanced,
		Budget:              DefaultBudget,
		MaxTransfersPerWeek: DefaultMaxTransfersPerWeek,
		MinConfidence:       DefaultMinConfidence,
		MaxRisk:             DefaultMaxRisk,
		Seed:                DefaultSeed,
	}
}

// Validate rejects structurally invalid run configurations. Malformed
// configuration is the one fatal error class in a run: every later
// failure is recovered locally and the run continues.
func (c Config) Validate() error {
	if c.StartGameweek < 1 {
		return fmt.Errorf("start gameweek must be at least 1, got %d", c.StartGameweek)
	}
	if c.EndGameweek < c.StartGameweek {
		return fmt.Errorf("end gameweek %d precedes start gameweek %d", c.EndGameweek, c.StartGameweek)
	}
	if len(c.InitialSquad.Players) == 0 {
		return errors.New("initial squad is empty")
	}
	if c.Budget < 0 {
		return fmt.Errorf("budget must not be negative, got %.1f", c.Budget)
	}
	if c.MaxTransfersPerWeek < 0 {
		return fmt.Errorf("max transfers per week must not be negative, got %d", c.MaxTransfersPerWeek)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be within [0, 1], got %.2f", c.MinConfidence)
	}
	if c.MaxRisk < 0 || c.MaxRisk > 1 {
		return fmt.Errorf("max risk must be within [0, 1], got %.2f", c.MaxRisk)
	}
	if _, err := transfers.ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	return nil
}

// GameweekResult is one week's outcome: the points breakdown of the
// pre-transfer squad and the moves made going into the next week.
type GameweekResult struct {
	Gameweek      int     `json:"gameweek"`
	SquadPoints   float64 `json:"squad_points"`
	BenchPoints   float64 `json:"bench_points"`
	CaptainPoints float64 `json:"captain_points"`
	TransfersMade int     `json:"transfers_made"`
	TransferHits  int     `json:"transfer_hits"`

	// TotalPoints is squad points minus transfer hits. Bench points are
	// tracked above but never counted here.
	TotalPoints float64 `json:"total_points"`

	SquadValue  float64              `json:"squad_value"`
	Transfers   []transfers.Transfer `json:"transfers"`
	Captain     string               `json:"captain_choice"`
	ViceCaptain string               `json:"vice_captain_choice"`
}

// Result aggregates a finished run.
type Result struct {
	RunID         string `json:"run_id"`
	StartGameweek int    `json:"start_gameweek"`
	EndGameweek   int    `json:"end_gameweek"`

	TotalPoints       float64 `json:"total_points"`
	AveragePoints     float64 `json:"average_points_per_gameweek"`
	TotalTransfers    int     `json:"total_transfers"`
	TotalTransferHits int     `json:"total_transfer_hits"`
	FinalSquadValue   float64 `json:"final_squad_value"`

	GameweekResults    []GameweekResult   `json:"gameweek_results"`
	PerformanceMetrics map[string]float64 `json:"performance_metrics"`
	Strategy           Config             `json:"strategy_config"`
}
