package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// DatasetSource supplies the player pool to rescore. Reload picks up
// file changes made since the last run.
type DatasetSource interface {
	Reload() error
	Players() []domain.Player
	Gameweek() int
}

// PoolScorer ranks a player pool, best first.
type PoolScorer interface {
	RankPool(players []domain.Player, cb progress.Callback) []scoring.ScoreResult
}

// ScoreStore persists one gameweek's scores.
type ScoreStore interface {
	SaveScores(gameweek int, results []scoring.ScoreResult) error
}

// RescoreJob re-scores the whole dataset and persists the snapshots.
// Runs daily so stored scores track the latest data file.
type RescoreJob struct {
	log    zerolog.Logger
	source DatasetSource
	scorer PoolScorer
	store  ScoreStore
}

// NewRescoreJob creates a new rescore job
func NewRescoreJob(source DatasetSource, scorer PoolScorer, store ScoreStore, log zerolog.Logger) *RescoreJob {
	return &RescoreJob{
		log:    log.With().Str("job", "rescore").Logger(),
		source: source,
		scorer: scorer,
		store:  store,
	}
}

// Name returns the job name
func (j *RescoreJob) Name() string {
	return "rescore"
}

// Run executes the rescore
func (j *RescoreJob) Run() error {
	j.log.Info().Msg("Starting rescore")
	startTime := time.Now()

	if err := j.source.Reload(); err != nil {
		return fmt.Errorf("failed to reload dataset: %w", err)
	}

	players := j.source.Players()
	gameweek := j.source.Gameweek()

	results := j.scorer.RankPool(players, nil)

	if err := j.store.SaveScores(gameweek, results); err != nil {
		return fmt.Errorf("failed to persist snapshots: %w", err)
	}

	j.log.Info().
		Int("players", len(players)).
		Int("scored", len(results)).
		Int("gameweek", gameweek).
		Dur("duration", time.Since(startTime)).
		Msg("Rescore complete")

	return nil
}
