package evaluation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/workers"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/scoring/scorers"
	"github.com/aristath/gaffer/internal/simdata"
)

type stubTeams map[string]domain.Team

func (s stubTeams) TeamByName(name string) (domain.Team, bool) {
	t, ok := s[name]
	return t, ok
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := scoring.DefaultConfig()
	require.NoError(t, cfg.Validate())

	scorer := scorers.NewImpactScorer(cfg, simdata.NewFormHistory(42), simdata.NewFixtureRun(42), zerolog.Nop())
	teams := stubTeams{
		"Arsenal": {
			ID: 1, Name: "Arsenal", Strength: 80, LeaguePosition: 2,
			Played: 10, Points: 24, GoalsFor: 22, GoalsAgainst: 8, Form: "WWDWL",
		},
		"Luton": {
			ID: 2, Name: "Luton", Strength: 35, LeaguePosition: 18,
			Played: 10, Points: 6, GoalsFor: 8, GoalsAgainst: 21, Form: "LLDLW",
		},
	}
	return NewService(scorer, teams, workers.NewWorkerPool(4), zerolog.Nop())
}

func TestScorePlayer_RejectsMissingID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ScorePlayer(domain.Player{Name: "No ID", Team: "Arsenal", Position: domain.Midfielder})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must be positive")
}

func TestScorePlayer_BoundsHoldAcrossPositions(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		description string
		player      domain.Player
	}{
		{
			description: "established premium midfielder",
			player: domain.Player{
				ID: 11, Name: "Star Mid", Team: "Arsenal", Position: domain.Midfielder,
				Price: 13.0, Form: 8.2, TotalPoints: 220, GamesPlayed: 30,
				GoalsScored: 18, Assists: 10, Bonus: 24, SelectedByPercent: 45,
				Influence: 1100, Creativity: 900, Threat: 1300,
			},
		},
		{
			description: "budget goalkeeper",
			player: domain.Player{
				ID: 21, Name: "Cheap Keeper", Team: "Luton", Position: domain.Goalkeeper,
				Price: 4.0, Form: 3.1, TotalPoints: 60, GamesPlayed: 20,
				Saves: 80, CleanSheets: 4, GoalsConceded: 32, SelectedByPercent: 6,
			},
		},
		{
			description: "unplayed reserve defender",
			player: domain.Player{
				ID: 31, Name: "Bench Body", Team: "Luton", Position: domain.Defender,
				Price: 3.9,
			},
		},
		{
			description: "in-form forward",
			player: domain.Player{
				ID: 41, Name: "Hot Striker", Team: "Arsenal", Position: domain.Forward,
				Price: 8.5, Form: 7.4, TotalPoints: 140, GamesPlayed: 25,
				GoalsScored: 14, Assists: 4, Bonus: 15, SelectedByPercent: 18, Threat: 1200,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			result, err := svc.ScorePlayer(tt.player)
			require.NoError(t, err)

			assert.Equal(t, tt.player.ID, result.PlayerID)
			assert.GreaterOrEqual(t, result.FinalScore, 0.0)
			assert.LessOrEqual(t, result.FinalScore, scoring.MasterScoreMax)
			assert.GreaterOrEqual(t, result.Confidence, scoring.ConfidenceFloor)
			assert.LessOrEqual(t, result.Confidence, scoring.ConfidenceCeiling)
			assert.LessOrEqual(t, result.ExpectedRange.Lower, result.FinalScore)
			assert.GreaterOrEqual(t, result.ExpectedRange.Upper, result.FinalScore)

			for _, sub := range result.SubScores.Values() {
				assert.GreaterOrEqual(t, sub, 0.0)
				assert.LessOrEqual(t, sub, scoring.CompositeScoreMax)
			}
		})
	}
}

func TestScorePlayer_UnknownClubFallsBackToNeutral(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ScorePlayer(domain.Player{
		ID: 99, Name: "Journeyman", Team: "Nowhere FC", Position: domain.Midfielder,
		Price: 5.0, Form: 4.0, TotalPoints: 50, GamesPlayed: 15,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, scoring.MasterScoreMax)
}

func TestScorePlayer_Deterministic(t *testing.T) {
	svc := newTestService(t)

	player := domain.Player{
		ID: 11, Name: "Star Mid", Team: "Arsenal", Position: domain.Midfielder,
		Price: 13.0, Form: 8.2, TotalPoints: 220, GamesPlayed: 30,
		GoalsScored: 18, Assists: 10, Bonus: 24, SelectedByPercent: 45,
	}

	first, err := svc.ScorePlayer(player)
	require.NoError(t, err)
	second, err := svc.ScorePlayer(player)
	require.NoError(t, err)

	assert.Equal(t, first, second, "scoring the same record twice must be identical")
}

func TestScorePool_DropsFailedRecords(t *testing.T) {
	svc := newTestService(t)

	players := []domain.Player{
		{ID: 1, Name: "First", Team: "Arsenal", Position: domain.Midfielder, Price: 5, GamesPlayed: 10, TotalPoints: 40, Form: 4},
		{Name: "Broken"}, // no id
		{ID: 3, Name: "Third", Team: "Luton", Position: domain.Forward, Price: 6, GamesPlayed: 12, TotalPoints: 50, Form: 5},
	}

	results := svc.ScorePool(players, nil)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].PlayerID)
	assert.Equal(t, 3, results[1].PlayerID)
}

func TestRankPool_OrdersByScoreThenName(t *testing.T) {
	svc := newTestService(t)

	// Two identical unplayed players tie exactly; the name breaks the tie.
	players := []domain.Player{
		{ID: 2, Name: "Beta", Team: "Luton", Position: domain.Defender, Price: 4.0},
		{ID: 1, Name: "Alpha", Team: "Luton", Position: domain.Defender, Price: 4.0},
		{ID: 11, Name: "Star Mid", Team: "Arsenal", Position: domain.Midfielder,
			Price: 13.0, Form: 8.2, TotalPoints: 220, GamesPlayed: 30,
			GoalsScored: 18, Assists: 10, Bonus: 24, SelectedByPercent: 45},
	}

	ranked := svc.RankPool(players, nil)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Star Mid", ranked[0].PlayerName, "played star should outrank unplayed reserves")
	assert.Equal(t, "Alpha", ranked[1].PlayerName)
	assert.Equal(t, "Beta", ranked[2].PlayerName)
	assert.InDelta(t, ranked[1].FinalScore, ranked[2].FinalScore, 1e-9, "identical records must tie")

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].FinalScore, ranked[i].FinalScore)
	}
}
