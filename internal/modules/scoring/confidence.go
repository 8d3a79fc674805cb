package scoring

import "math"

// ConfidenceLevel is a coarse label over the confidence multiplier,
// useful for display and for transfer decision gates.
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
)

// Multiplier bands for the confidence levels.
const (
	veryHighConfidence = 1.3
	highConfidence     = 1.1
	mediumConfidence   = 0.9
	lowConfidence      = 0.7
)

// LevelForMultiplier maps a confidence multiplier to its label.
func LevelForMultiplier(m float64) ConfidenceLevel {
	switch {
	case m >= veryHighConfidence:
		return ConfidenceVeryHigh
	case m >= highConfidence:
		return ConfidenceHigh
	case m >= mediumConfidence:
		return ConfidenceMedium
	case m >= lowConfidence:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ExpectedRange returns the band the true score is expected to fall in.
// Lower confidence widens the band: at full confidence the band collapses
// to the score itself, at the floor it spans +/- 2 points.
func ExpectedRange(score, confidence float64) ScoreRange {
	halfWidth := (ConfidenceCeiling - confidence) * 2.0
	return ScoreRange{
		Lower: math.Max(0, score-halfWidth),
		Upper: math.Min(MasterScoreMax, score+halfWidth),
	}
}
