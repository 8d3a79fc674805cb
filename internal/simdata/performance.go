package simdata

import (
	"math"
	"math/rand"

	"github.com/aristath/gaffer/internal/domain"
)

// Per-position points distributions for simulated gameweek outcomes.
// Means and spreads follow typical FPL scoring ranges per position.
const (
	gkPointsMean  = 4.0
	gkPointsStd   = 2.0
	gkPointsCap   = 10.0
	defPointsMean = 5.0
	defPointsStd  = 3.0
	defPointsCap  = 12.0
	midPointsMean = 6.0
	midPointsStd  = 4.0
	midPointsCap  = 15.0
	fwdPointsMean = 5.5
	fwdPointsStd  = 4.5
	fwdPointsCap  = 15.0
)

// PerformanceRun simulates realized gameweek outcomes for players. Each
// (player, gameweek) pair draws from its own sub-seeded stream, so the
// same pair always yields the same outcome within a run seed.
type PerformanceRun struct {
	seed int64
}

// NewPerformanceRun creates a seeded gameweek performance generator.
func NewPerformanceRun(seed int64) *PerformanceRun {
	return &PerformanceRun{seed: seed}
}

// PlayerPerformance returns the simulated outcome for one player in one
// gameweek: points drawn from the position's distribution, minutes from
// the typical appearance split, and derived goal/assist/bonus counters.
func (pr *PerformanceRun) PlayerPerformance(p domain.Player, gameweek int) domain.GameweekPerformance {
	rng := rand.New(rand.NewSource(SubSeed(pr.seed, "performance", p.ID, gameweek)))

	var mean, std, ceiling float64
	switch p.Position {
	case domain.Goalkeeper:
		mean, std, ceiling = gkPointsMean, gkPointsStd, gkPointsCap
	case domain.Defender:
		mean, std, ceiling = defPointsMean, defPointsStd, defPointsCap
	case domain.Forward:
		mean, std, ceiling = fwdPointsMean, fwdPointsStd, fwdPointsCap
	default:
		mean, std, ceiling = midPointsMean, midPointsStd, midPointsCap
	}

	points := mean + rng.NormFloat64()*std
	points = math.Max(0, math.Min(ceiling, points))

	minutes := drawMinutes(rng)

	attacker := p.Position == domain.Midfielder || p.Position == domain.Forward
	goals, assists := 0, 0
	if attacker {
		goals = int(points / 4)
		assists = int(math.Mod(points, 4) / 3)
	}

	cleanSheet := false
	if p.Position == domain.Goalkeeper || p.Position == domain.Defender {
		cleanSheet = points > 4
	}

	bonus := 0
	if points > 6 {
		bonus = int(points / 3)
	}

	return domain.GameweekPerformance{
		PlayerID:   p.ID,
		Gameweek:   gameweek,
		Points:     points,
		Minutes:    minutes,
		Goals:      goals,
		Assists:    assists,
		CleanSheet: cleanSheet,
		Bonus:      bonus,
	}
}

// drawMinutes picks from {0, 45, 60, 90} with weights 10/10/10/70: most
// appearances are full matches, the rest split between benchings and
// substitute shifts.
func drawMinutes(rng *rand.Rand) int {
	u := rng.Float64()
	switch {
	case u < 0.1:
		return 0
	case u < 0.2:
		return 45
	case u < 0.3:
		return 60
	default:
		return 90
	}
}
