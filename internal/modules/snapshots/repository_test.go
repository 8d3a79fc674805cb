package snapshots

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/backtest"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/transfers"
	testingpkg "github.com/aristath/gaffer/internal/testing"
)

func setupRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	db, cleanup := testingpkg.NewTestDB(t, "snapshots")
	repo := NewRepository(db.Conn(), zerolog.Nop())
	return repo, cleanup
}

func scoreResult(id int, name string, position domain.Position, score, confidence float64) scoring.ScoreResult {
	return scoring.ScoreResult{
		PlayerID:   id,
		PlayerName: name,
		Position:   position,
		FinalScore: score,
		Confidence: confidence,
		SubScores: scoring.SubScores{
			Quality: score / 2,
			Form:    score / 4,
			Value:   score / 8,
		},
	}
}

func TestSaveScores_RoundTrip(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	results := []scoring.ScoreResult{
		scoreResult(1, "Saka", domain.Midfielder, 72.5, 0.8),
		scoreResult(2, "Haaland", domain.Forward, 88.0, 0.9),
		scoreResult(3, "Raya", domain.Goalkeeper, 55.0, 0.7),
	}

	err := repo.SaveScores(5, results)
	require.NoError(t, err)

	snapshots, err := repo.ScoresByGameweek(5)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	// Highest score first
	assert.Equal(t, "Haaland", snapshots[0].PlayerName)
	assert.Equal(t, 88.0, snapshots[0].FinalScore)
	assert.Equal(t, "Saka", snapshots[1].PlayerName)
	assert.Equal(t, "Raya", snapshots[2].PlayerName)

	// Sub-scores survive the JSON column round trip
	assert.Equal(t, 44.0, snapshots[0].SubScores.Quality)
	assert.Equal(t, 22.0, snapshots[0].SubScores.Form)
	assert.Equal(t, 11.0, snapshots[0].SubScores.Value)

	assert.Equal(t, 2, snapshots[0].PlayerID)
	assert.Equal(t, string(domain.Forward), snapshots[0].Position)
	assert.Equal(t, 5, snapshots[0].Gameweek)
	assert.Equal(t, 0.9, snapshots[0].Confidence)
	assert.False(t, snapshots[0].CreatedAt.IsZero())
}

func TestSaveScores_RescoreReplaces(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	err := repo.SaveScores(3, []scoring.ScoreResult{
		scoreResult(1, "Saka", domain.Midfielder, 50.0, 0.6),
	})
	require.NoError(t, err)

	err = repo.SaveScores(3, []scoring.ScoreResult{
		scoreResult(1, "Saka", domain.Midfielder, 60.0, 0.75),
	})
	require.NoError(t, err)

	snapshots, err := repo.ScoresByGameweek(3)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 60.0, snapshots[0].FinalScore)
	assert.Equal(t, 0.75, snapshots[0].Confidence)
}

func TestSaveScores_EmptyIsNoOp(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	err := repo.SaveScores(1, nil)
	require.NoError(t, err)

	snapshots, err := repo.ScoresByGameweek(1)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestScoresByGameweek_FiltersOtherWeeks(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	require.NoError(t, repo.SaveScores(1, []scoring.ScoreResult{
		scoreResult(1, "Saka", domain.Midfielder, 70.0, 0.8),
	}))
	require.NoError(t, repo.SaveScores(2, []scoring.ScoreResult{
		scoreResult(1, "Saka", domain.Midfielder, 65.0, 0.8),
		scoreResult(2, "Haaland", domain.Forward, 90.0, 0.9),
	}))

	snapshots, err := repo.ScoresByGameweek(1)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 70.0, snapshots[0].FinalScore)
}

func TestPlayerHistory_OrderedByGameweek(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	for gw, score := range map[int]float64{3: 62.0, 1: 70.0, 2: 55.0} {
		require.NoError(t, repo.SaveScores(gw, []scoring.ScoreResult{
			scoreResult(7, "Palmer", domain.Midfielder, score, 0.8),
			scoreResult(8, "Foden", domain.Midfielder, score-5, 0.7),
		}))
	}

	history, err := repo.PlayerHistory(7)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{history[0].Gameweek, history[1].Gameweek, history[2].Gameweek})
	assert.Equal(t, 70.0, history[0].FinalScore)
	assert.Equal(t, 55.0, history[1].FinalScore)
	assert.Equal(t, 62.0, history[2].FinalScore)
}

func sampleRun(id string, totalPoints float64) backtest.Result {
	cfg := backtest.DefaultConfig()
	cfg.StartGameweek = 1
	cfg.EndGameweek = 2

	return backtest.Result{
		RunID:             id,
		StartGameweek:     1,
		EndGameweek:       2,
		TotalPoints:       totalPoints,
		AveragePoints:     totalPoints / 2,
		TotalTransfers:    3,
		TotalTransferHits: 4,
		FinalSquadValue:   95.5,
		GameweekResults: []backtest.GameweekResult{
			{Gameweek: 1, SquadPoints: totalPoints / 2, TotalPoints: totalPoints / 2, Captain: "Haaland"},
			{Gameweek: 2, SquadPoints: totalPoints / 2, TotalPoints: totalPoints / 2, Captain: "Saka"},
		},
		PerformanceMetrics: map[string]float64{"total_points": totalPoints},
		Strategy:           cfg,
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	stored := sampleRun("run-abc", 120.0)
	require.NoError(t, repo.SaveRun(stored))

	loaded, err := repo.Run("run-abc")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "run-abc", loaded.RunID)
	assert.Equal(t, 120.0, loaded.TotalPoints)
	assert.Equal(t, 4, loaded.TotalTransferHits)
	assert.Equal(t, transfers.StrategyBalanced, loaded.Strategy.Strategy)
	require.Len(t, loaded.GameweekResults, 2)
	assert.Equal(t, "Haaland", loaded.GameweekResults[0].Captain)
	assert.Equal(t, 120.0, loaded.PerformanceMetrics["total_points"])
}

func TestSaveRun_RequiresID(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	err := repo.SaveRun(backtest.Result{})
	assert.Error(t, err)
}

func TestRun_NotFound(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	loaded, err := repo.Run("missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRuns_NewestFirstWithLimit(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	require.NoError(t, repo.SaveRun(sampleRun("run-a", 100.0)))
	require.NoError(t, repo.SaveRun(sampleRun("run-b", 110.0)))
	require.NoError(t, repo.SaveRun(sampleRun("run-c", 120.0)))

	// Rows share a created_at second, so id breaks the tie
	runs, err := repo.Runs(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)

	assert.Equal(t, 120.0, runs[0].TotalPoints)
	assert.Equal(t, 60.0, runs[0].AveragePoints)
	assert.Equal(t, "balanced", runs[0].Strategy)
	assert.Equal(t, 95.5, runs[0].FinalSquadValue)
	assert.False(t, runs[0].CreatedAt.IsZero())

	all, err := repo.Runs(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveRun_ReplacesExisting(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	require.NoError(t, repo.SaveRun(sampleRun("run-a", 100.0)))
	require.NoError(t, repo.SaveRun(sampleRun("run-a", 140.0)))

	loaded, err := repo.Run("run-a")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 140.0, loaded.TotalPoints)

	runs, err := repo.Runs(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
