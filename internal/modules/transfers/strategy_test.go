package transfers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		description string
		input       string
		want        Strategy
		wantErr     bool
	}{
		{"empty defaults to balanced", "", StrategyBalanced, false},
		{"aggressive", "aggressive", StrategyAggressive, false},
		{"balanced", "balanced", StrategyBalanced, false},
		{"conservative", "conservative", StrategyConservative, false},
		{"unknown", "yolo", "", true},
		{"wrong case", "Aggressive", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAcceptCandidate(t *testing.T) {
	tests := []struct {
		description string
		strategy    Strategy
		candidate   Candidate
		want        bool
	}{
		{
			description: "aggressive takes high score and confidence",
			strategy:    StrategyAggressive,
			candidate:   Candidate{Score: 7.5, Confidence: 0.75},
			want:        true,
		},
		{
			description: "aggressive rejects score exactly at the threshold",
			strategy:    StrategyAggressive,
			candidate:   Candidate{Score: 7.0, Confidence: 0.9},
			want:        false,
		},
		{
			description: "aggressive rejects low confidence",
			strategy:    StrategyAggressive,
			candidate:   Candidate{Score: 9.0, Confidence: 0.7},
			want:        false,
		},
		{
			description: "conservative takes low risk and high confidence",
			strategy:    StrategyConservative,
			candidate:   Candidate{Score: 4.0, Confidence: 0.85, Risk: 0.1},
			want:        true,
		},
		{
			description: "conservative rejects risk at the threshold",
			strategy:    StrategyConservative,
			candidate:   Candidate{Confidence: 0.9, Risk: 0.3},
			want:        false,
		},
		{
			description: "balanced takes middling profiles",
			strategy:    StrategyBalanced,
			candidate:   Candidate{Score: 6.5, Risk: 0.4},
			want:        true,
		},
		{
			description: "balanced rejects weak scores regardless of risk",
			strategy:    StrategyBalanced,
			candidate:   Candidate{Score: 6.0, Risk: 0.0},
			want:        false,
		},
		{
			description: "unknown strategy behaves as balanced",
			strategy:    Strategy("mystery"),
			candidate:   Candidate{Score: 6.5, Risk: 0.4},
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.acceptCandidate(tt.candidate))
		})
	}
}

func TestAcceptCombination(t *testing.T) {
	tests := []struct {
		description string
		strategy    Strategy
		combination Combination
		want        bool
	}{
		{
			description: "aggressive needs big gains",
			strategy:    StrategyAggressive,
			combination: Combination{TotalGain: 3.5, Confidence: 0.7},
			want:        true,
		},
		{
			description: "aggressive rejects modest gains",
			strategy:    StrategyAggressive,
			combination: Combination{TotalGain: 2.9, Confidence: 0.9},
			want:        false,
		},
		{
			description: "conservative screens on combined risk",
			strategy:    StrategyConservative,
			combination: Combination{TotalGain: 0.5, Confidence: 0.85, Risk: 0.2},
			want:        true,
		},
		{
			description: "conservative rejects confident but risky sets",
			strategy:    StrategyConservative,
			combination: Combination{TotalGain: 6.0, Confidence: 0.9, Risk: 0.35},
			want:        false,
		},
		{
			description: "balanced needs gain above one",
			strategy:    StrategyBalanced,
			combination: Combination{TotalGain: 1.1, Risk: 0.45},
			want:        true,
		},
		{
			description: "balanced rejects risky sets",
			strategy:    StrategyBalanced,
			combination: Combination{TotalGain: 4.0, Risk: 0.5},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.acceptCombination(tt.combination))
		})
	}
}
