package transfers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/gaffer/internal/domain"
)

func newTestChecker() *Checker {
	return NewChecker(DefaultSquadRules(), DefaultTransferRules())
}

func TestValidateSquad_LegalSquad(t *testing.T) {
	checker := newTestChecker()

	result := checker.ValidateSquad(testSquad())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	assert.Equal(t, 15, result.Stats.TotalPlayers)
	assert.Equal(t, 2, result.Stats.PositionCounts[domain.Goalkeeper])
	assert.Equal(t, 5, result.Stats.PositionCounts[domain.Defender])
	assert.Equal(t, 5, result.Stats.PositionCounts[domain.Midfielder])
	assert.Equal(t, 3, result.Stats.PositionCounts[domain.Forward])
	assert.Equal(t, 3, result.Stats.TeamCounts["Arsenal"])
	assert.InDelta(t, 88.5, result.Stats.TotalCost, 1e-9)
	assert.InDelta(t, 11.5, result.Stats.BudgetRemaining, 1e-9)

	// 88.5 sits under ninety percent of the budget.
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Using only")
}

func TestValidateSquad_Violations(t *testing.T) {
	tests := []struct {
		description string
		mutate      func(*domain.Squad)
		wantError   string
	}{
		{
			description: "short squad",
			mutate: func(s *domain.Squad) {
				s.Players = s.Players[:14]
			},
			wantError: "Squad must have exactly 15 players, got 14",
		},
		{
			description: "third goalkeeper",
			mutate: func(s *domain.Squad) {
				s.Players[14].Position = domain.Goalkeeper
			},
			wantError: "Can have at most 2 goalkeepers",
		},
		{
			description: "too few forwards",
			mutate: func(s *domain.Squad) {
				for i := range s.Players {
					if s.Players[i].Position == domain.Forward {
						s.Players[i].Position = domain.Midfielder
					}
				}
			},
			wantError: "Must have at least 1 forwards",
		},
		{
			description: "fourth player from one club",
			mutate: func(s *domain.Squad) {
				s.Players[14].Team = "Arsenal"
			},
			wantError: "Can have at most 3 players from Arsenal, got 4",
		},
		{
			description: "budget exceeded",
			mutate: func(s *domain.Squad) {
				for i := range s.Players {
					s.Players[i].Price = 7.0
				}
			},
			wantError: "exceeds budget limit",
		},
		{
			description: "player over the value ceiling",
			mutate: func(s *domain.Squad) {
				s.Players[0].Price = 15.5
			},
			wantError: "exceeds maximum player value",
		},
	}

	checker := newTestChecker()
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			squad := testSquad()
			tt.mutate(&squad)

			result := checker.ValidateSquad(squad)
			assert.False(t, result.Valid)
			assertAnyContains(t, result.Errors, tt.wantError)
		})
	}
}

func TestCheckSquadLimits(t *testing.T) {
	checker := newTestChecker()

	assert.True(t, checker.CheckSquadLimits(testSquad()))

	// A sixth defender breaks the position ceiling.
	overloaded := testSquad()
	overloaded.Players[10].Position = domain.Defender
	assert.False(t, checker.CheckSquadLimits(overloaded))

	// Four players from one club break the team cap.
	stacked := testSquad()
	stacked.Players[14].Team = "Arsenal"
	assert.False(t, checker.CheckSquadLimits(stacked))
}

func TestValidateTransfers(t *testing.T) {
	checker := newTestChecker()
	squad := testSquad()

	t.Run("no transfers is trivially valid", func(t *testing.T) {
		result := checker.ValidateTransfers(squad, nil)
		assert.True(t, result.Valid)
		assert.Zero(t, result.TransferCost)
		assert.Zero(t, result.TransfersMade)
	})

	t.Run("extra transfers cost points", func(t *testing.T) {
		transfers := []Transfer{
			{
				Out: squad.Players[10], // Mid Four
				In:  domain.Player{ID: 201, Name: "New Mid", Team: "Spurs", Position: domain.Midfielder, Price: 6.0},
			},
			{
				Out: squad.Players[11], // Mid Five
				In:  domain.Player{ID: 202, Name: "Other Mid", Team: "Wolves", Position: domain.Midfielder, Price: 5.5},
			},
		}

		result := checker.ValidateTransfers(squad, transfers)
		assert.True(t, result.Valid)
		assert.Equal(t, 4, result.TransferCost, "one transfer over the free allowance")
		assert.Equal(t, 2, result.TransfersMade)
	})

	t.Run("self transfer is rejected", func(t *testing.T) {
		transfers := []Transfer{{Out: squad.Players[10], In: squad.Players[10]}}

		result := checker.ValidateTransfers(squad, transfers)
		assert.False(t, result.Valid)
		assertAnyContains(t, result.Errors, "cannot transfer a player for themselves")
	})

	t.Run("unspecified players are rejected", func(t *testing.T) {
		transfers := []Transfer{{In: domain.Player{ID: 201, Position: domain.Midfielder}}}

		result := checker.ValidateTransfers(squad, transfers)
		assert.False(t, result.Valid)
		assertAnyContains(t, result.Errors, "must be specified")
	})

	t.Run("price jump draws a warning", func(t *testing.T) {
		transfers := []Transfer{
			{
				Out: squad.Players[11], // Mid Five, 5.0
				In:  domain.Player{ID: 201, Name: "Premium", Team: "Spurs", Position: domain.Midfielder, Price: 9.0},
			},
		}

		result := checker.ValidateTransfers(squad, transfers)
		assert.True(t, result.Valid)
		assertAnyContains(t, result.Warnings, "significant price increase")
	})

	t.Run("resulting squad violations propagate", func(t *testing.T) {
		transfers := []Transfer{
			{
				Out: squad.Players[11], // Mid Five, Villa
				In:  domain.Player{ID: 201, Name: "Fourth Gunner", Team: "Arsenal", Position: domain.Midfielder, Price: 6.0},
			},
		}

		result := checker.ValidateTransfers(squad, transfers)
		assert.False(t, result.Valid)
		assertAnyContains(t, result.Errors, "Can have at most 3 players from Arsenal")
	})
}

func assertAnyContains(t *testing.T, messages []string, substring string) {
	t.Helper()
	for _, message := range messages {
		if strings.Contains(message, substring) {
			return
		}
	}
	t.Errorf("no message containing %q in %v", substring, messages)
}

func TestFormationFor(t *testing.T) {
	checker := newTestChecker()

	tests := []struct {
		description string
		counts      map[domain.Position]int
		want        Formation
	}{
		{
			description: "four four two",
			counts:      map[domain.Position]int{domain.Defender: 4, domain.Midfielder: 4, domain.Forward: 2},
			want:        Formation442,
		},
		{
			description: "five at the back",
			counts:      map[domain.Position]int{domain.Defender: 5, domain.Midfielder: 4, domain.Forward: 1},
			want:        Formation541,
		},
		{
			description: "full-squad counts fall back",
			counts:      map[domain.Position]int{domain.Defender: 5, domain.Midfielder: 5, domain.Forward: 3},
			want:        Formation343,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.FormationFor(tt.counts))
		})
	}
}

func TestFormationRequirements(t *testing.T) {
	requirements := FormationRequirements(Formation343)
	assert.Equal(t, 2, requirements[domain.Goalkeeper])
	assert.Equal(t, 3, requirements[domain.Defender])
	assert.Equal(t, 4, requirements[domain.Midfielder])
	assert.Equal(t, 3, requirements[domain.Forward])

	assert.Empty(t, FormationRequirements(Formation("2-2-2")))
}
