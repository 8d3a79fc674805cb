// Package scoring defines the player scoring model: composite weights,
// thresholds, and the result types produced by the score calculators.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/aristath/gaffer/internal/domain"
)

// ValidationError represents a scoring configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Weights holds the composite weights that blend the five sub-scores
// into the master impact score. Each set must sum to 1.0.
type Weights struct {
	Quality      float64 `json:"quality"`
	Form         float64 `json:"form"`
	TeamMomentum float64 `json:"team_momentum"`
	Fixture      float64 `json:"fixture"`
	Value        float64 `json:"value"`
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Quality + w.Form + w.TeamMomentum + w.Fixture + w.Value
}

// Config holds the tunable parameters of the scoring pipeline.
// Zero-value Config is not usable; start from DefaultConfig.
type Config struct {
	// Seed drives every simulated input (form history, fixture runs).
	// The same seed and the same player always produce the same score.
	// Zero means "derive from wall clock" and is resolved at wiring time.
	Seed int64 `json:"seed"`

	// PositionWeights are the composite weights per position. Positions
	// absent from the map fall back to DefaultWeights.
	PositionWeights map[domain.Position]Weights `json:"position_weights"`

	// DefaultWeights apply when a player's position has no dedicated set.
	DefaultWeights Weights `json:"default_weights"`

	// PositionPriors are the Bayesian prior quality scores per position.
	PositionPriors map[domain.Position]float64 `json:"position_priors"`

	// LookaheadGameweeks is the fixture window the fixture score evaluates.
	LookaheadGameweeks int `json:"lookahead_gameweeks"`
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		PositionWeights: map[domain.Position]Weights{
			// Keepers live and die by underlying quality; fixtures
			// matter more than personal form streaks.
			domain.Goalkeeper: {Quality: 0.35, Form: 0.25, TeamMomentum: 0.20, Fixture: 0.15, Value: 0.05},
			// Defenders lean on team defence and fixture runs.
			domain.Defender: {Quality: 0.30, Form: 0.25, TeamMomentum: 0.20, Fixture: 0.20, Value: 0.05},
			// Midfielders reward fixture targeting and value hunting.
			domain.Midfielder: {Quality: 0.30, Form: 0.25, TeamMomentum: 0.15, Fixture: 0.20, Value: 0.10},
			// Forwards are bought for raw quality above all.
			domain.Forward: {Quality: 0.35, Form: 0.25, TeamMomentum: 0.15, Fixture: 0.15, Value: 0.10},
		},
		DefaultWeights: Weights{Quality: 0.35, Form: 0.25, TeamMomentum: 0.15, Fixture: 0.15, Value: 0.10},
		PositionPriors: map[domain.Position]float64{
			domain.Goalkeeper: 4.0,
			domain.Defender:   4.5,
			domain.Midfielder: 5.0,
			domain.Forward:    4.5,
		},
		LookaheadGameweeks: DefaultLookaheadGameweeks,
	}
}

// WeightsFor returns the composite weights for a position, falling back
// to the default set when the position has no dedicated entry.
func (c Config) WeightsFor(pos domain.Position) Weights {
	if w, ok := c.PositionWeights[pos]; ok {
		return w
	}
	return c.DefaultWeights
}

// PriorFor returns the Bayesian prior for a position. Unknown positions
// get a neutral 5.0.
func (c Config) PriorFor(pos domain.Position) float64 {
	if p, ok := c.PositionPriors[pos]; ok {
		return p
	}
	return 5.0
}

const weightSumTolerance = 1e-9

// Validate checks the configuration for internal consistency.
// Returns ValidationErrors if the configuration is invalid.
func (c Config) Validate() error {
	var errors ValidationErrors

	if c.LookaheadGameweeks <= 0 {
		errors = append(errors, ValidationError{
			Field:   "lookahead_gameweeks",
			Message: "must be greater than 0",
		})
	}

	checkWeights := func(field string, w Weights) {
		components := []struct {
			name  string
			value float64
		}{
			{"quality", w.Quality},
			{"form", w.Form},
			{"team_momentum", w.TeamMomentum},
			{"fixture", w.Fixture},
			{"value", w.Value},
		}
		for _, comp := range components {
			if comp.value < 0 {
				errors = append(errors, ValidationError{
					Field:   field + "." + comp.name,
					Message: "must be >= 0.0",
				})
			}
		}
		if math.Abs(w.Sum()-1.0) > weightSumTolerance {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("weights must sum to 1.0, got %.6f", w.Sum()),
			})
		}
	}

	checkWeights("default_weights", c.DefaultWeights)
	for _, pos := range domain.Positions {
		if w, ok := c.PositionWeights[pos]; ok {
			checkWeights(fmt.Sprintf("position_weights.%s", pos), w)
		}
	}

	for _, pos := range domain.Positions {
		prior, ok := c.PositionPriors[pos]
		if !ok {
			continue
		}
		if prior < 0 || prior > CompositeScoreMax {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("position_priors.%s", pos),
				Message: "must be between 0.0 and 10.0",
			})
		}
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
