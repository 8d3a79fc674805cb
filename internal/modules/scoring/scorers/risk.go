package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
)

// positionRotationRisk is the baseline chance of being rested, by
// position. Keepers are near-undroppable; midfielders rotate most.
var positionRotationRisk = map[domain.Position]float64{
	domain.Goalkeeper: 0.1,
	domain.Defender:   0.2,
	domain.Midfielder: 0.3,
	domain.Forward:    0.25,
}

// InjuryRisk estimates availability risk from performance patterns.
// Poor form combined with a low points rate usually means a player is
// carrying a knock or losing minutes.
func InjuryRisk(p domain.Player) float64 {
	ppg := p.PointsPerGame()
	switch {
	case p.Form < 3.0 && ppg < 2.0:
		return 0.4
	case p.Form < 5.0 || ppg < 3.0:
		return 0.2
	default:
		return 0.05
	}
}

// RotationRisk estimates the chance a player is benched for a given
// match, from positional baseline, output, and ownership.
func RotationRisk(p domain.Player) float64 {
	return clamp01(rotationRiskRaw(p))
}

// rotationRiskRaw returns the unclamped rotation risk so the fixture
// scorer can layer congestion on top before clamping.
func rotationRiskRaw(p domain.Player) float64 {
	base, ok := positionRotationRisk[p.Position]
	if !ok {
		base = 0.25
	}

	ppg := p.PointsPerGame()
	if ppg > 5.0 {
		base -= 0.1 // Producing players keep their shirt
	} else if ppg < 3.0 {
		base += 0.15
	}

	if p.SelectedByPercent > 50.0 {
		base -= 0.05 // Managers rarely drop template players
	} else if p.SelectedByPercent < 10.0 {
		base += 0.1
	}

	return base
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
