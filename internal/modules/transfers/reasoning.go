package transfers

import (
	"strings"

	"github.com/aristath/gaffer/internal/domain"
)

// Gain thresholds for the generated justifications.
const (
	significantGain     = 2.0
	moderateGain        = 0.5
	highImpactTotalGain = 5.0
	moderateTotalGain   = 2.0
)

// positionUpside names what an incoming player at each position is
// expected to add.
var positionUpside = map[domain.Position]string{
	domain.Goalkeeper: "Better save performance and clean sheet potential",
	domain.Defender:   "Improved defensive returns and attacking threat",
	domain.Midfielder: "Enhanced creativity and goal threat",
	domain.Forward:    "Better finishing and goal-scoring potential",
}

// transferReasoning builds the one-line justification for a single swap.
func transferReasoning(in domain.Player, gain float64) string {
	var reasons []string

	if gain > significantGain {
		reasons = append(reasons, "Significant points improvement expected")
	} else if gain > moderateGain {
		reasons = append(reasons, "Moderate improvement expected")
	}

	if upside, ok := positionUpside[in.Position]; ok {
		reasons = append(reasons, upside)
	}

	if len(reasons) == 0 {
		return "General improvement"
	}
	return strings.Join(reasons, "; ")
}

// combinationReasoning summarizes a combination by its total gain.
func combinationReasoning(totalGain float64) string {
	switch {
	case totalGain > highImpactTotalGain:
		return "High-impact transfer combination with significant expected gains"
	case totalGain > moderateTotalGain:
		return "Moderate improvement across multiple positions"
	default:
		return "Incremental improvements to squad balance"
	}
}
