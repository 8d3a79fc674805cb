package transfers

import "fmt"

// Strategy selects how aggressively the optimizer trades expected gain
// against risk and confidence.
type Strategy string

const (
	StrategyAggressive   Strategy = "aggressive"
	StrategyBalanced     Strategy = "balanced"
	StrategyConservative Strategy = "conservative"
)

// Strategies lists the supported optimization strategies.
var Strategies = []Strategy{StrategyAggressive, StrategyBalanced, StrategyConservative}

// ParseStrategy converts a strategy string to a Strategy. The empty
// string maps to balanced, the default posture.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return StrategyBalanced, nil
	}
	switch Strategy(s) {
	case StrategyAggressive, StrategyBalanced, StrategyConservative:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Candidate filter thresholds per strategy.
const (
	aggressiveMinCandidateScore      = 7.0
	aggressiveMinCandidateConfidence = 0.7
	conservativeMaxCandidateRisk     = 0.3
	conservativeMinCandidateConf     = 0.8
	balancedMinCandidateScore        = 6.0
	balancedMaxCandidateRisk         = 0.5
)

// Combination post-filter thresholds per strategy.
const (
	aggressiveMinCombinationGain = 3.0
	aggressiveMinCombinationConf = 0.6
	conservativeMaxCombinedRisk  = 0.3
	conservativeMinCombinedConf  = 0.8
	balancedMinCombinationGain   = 1.0
	balancedMaxCombinedRisk      = 0.5
)

// acceptCandidate reports whether a scored pool player passes the
// strategy's target filter. Aggressive chases ceiling, conservative
// screens on risk, balanced sits in between. Unknown strategies fall
// back to balanced.
func (s Strategy) acceptCandidate(c Candidate) bool {
	switch s {
	case StrategyAggressive:
		return c.Score > aggressiveMinCandidateScore && c.Confidence > aggressiveMinCandidateConfidence
	case StrategyConservative:
		return c.Risk < conservativeMaxCandidateRisk && c.Confidence > conservativeMinCandidateConf
	default:
		return c.Score > balancedMinCandidateScore && c.Risk < balancedMaxCandidateRisk
	}
}

// acceptCombination reports whether a scored combination passes the
// strategy's post-filter.
func (s Strategy) acceptCombination(c Combination) bool {
	switch s {
	case StrategyAggressive:
		return c.TotalGain > aggressiveMinCombinationGain && c.Confidence > aggressiveMinCombinationConf
	case StrategyConservative:
		return c.Risk < conservativeMaxCombinedRisk && c.Confidence > conservativeMinCombinedConf
	default:
		return c.TotalGain > balancedMinCombinationGain && c.Risk < balancedMaxCombinedRisk
	}
}
