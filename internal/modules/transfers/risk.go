package transfers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
)

// Availability risk contributions. Factors stack and the sum is capped
// at 1.
const (
	repeatedInjuryRisk    = 0.3 // more than two recorded injuries
	priorInjuryRisk       = 0.1 // any recorded injury
	veteranAgeRisk        = 0.2 // older than 32
	youthAgeRisk          = 0.1 // younger than 20
	rotationExposureRisk  = 0.2
	fixtureCongestionRisk = 0.1 // more than three fixtures in the window

	veteranAge            = 32
	youthAge              = 20
	congestedFixtureCount = 3
)

// TransferRisk aggregates availability risk for a move target: injury
// record, age profile, rotation exposure, and fixture congestion. An
// unset age (zero value) contributes nothing.
func TransferRisk(p domain.Player) float64 {
	var risk float64

	switch {
	case len(p.InjuryHistory) > 2:
		risk += repeatedInjuryRisk
	case len(p.InjuryHistory) > 0:
		risk += priorInjuryRisk
	}

	switch {
	case p.Age > veteranAge:
		risk += veteranAgeRisk
	case p.Age > 0 && p.Age < youthAge:
		risk += youthAgeRisk
	}

	if p.RotationRisk {
		risk += rotationExposureRisk
	}

	if p.FixtureCongestion > congestedFixtureCount {
		risk += fixtureCongestionRisk
	}

	return math.Min(risk, 1.0)
}
