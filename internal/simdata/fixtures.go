package simdata

import (
	"math"
	"math/rand"

	"github.com/aristath/gaffer/internal/domain"
)

// Opponent strength distribution and scheduling odds for simulated runs.
const (
	meanOpponentStrength = 50.0
	opponentStrengthStd  = 15.0
	minOpponentStrength  = 20.0
	maxOpponentStrength  = 80.0

	doubleGameweekChance = 0.10
	blankGameweekChance  = 0.05
)

// FixtureRun simulates a team's upcoming fixtures: opponent strength,
// venue, difficulty, and double/blank scheduling quirks.
type FixtureRun struct {
	seed int64
}

// NewFixtureRun creates a seeded fixture run generator.
func NewFixtureRun(seed int64) *FixtureRun {
	return &FixtureRun{seed: seed}
}

// UpcomingFixtures returns the next lookahead fixtures for a team,
// nearest first. Difficulty follows the strength gap: a much stronger
// opponent pushes towards 5, a much weaker one towards 1.
func (fr *FixtureRun) UpcomingFixtures(team domain.Team, lookahead int) []domain.Fixture {
	rng := rand.New(rand.NewSource(SubSeed(fr.seed, "fixture-run", team.ID)))

	fixtures := make([]domain.Fixture, 0, lookahead)
	for gw := 0; gw < lookahead; gw++ {
		strength := meanOpponentStrength + rng.NormFloat64()*opponentStrengthStd
		strength = math.Max(minOpponentStrength, math.Min(maxOpponentStrength, strength))

		home := rng.Float64() > 0.5

		difficulty := 3.0 + (strength-team.Strength)/20.0
		difficulty = math.Max(1.0, math.Min(5.0, difficulty))

		fixtures = append(fixtures, domain.Fixture{
			Gameweek:         gw + 1,
			OpponentStrength: strength,
			Difficulty:       difficulty,
			Home:             home,
			Double:           rng.Float64() < doubleGameweekChance,
			Blank:            rng.Float64() < blankGameweekChance,
		})
	}

	return fixtures
}
