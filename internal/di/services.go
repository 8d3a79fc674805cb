// Package di provides dependency injection for repositories and services.
package di

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/config"
	"github.com/aristath/gaffer/internal/dataset"
	"github.com/aristath/gaffer/internal/evaluation"
	"github.com/aristath/gaffer/internal/evaluation/workers"
	"github.com/aristath/gaffer/internal/modules/backtest"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/scoring/scorers"
	"github.com/aristath/gaffer/internal/modules/snapshots"
	"github.com/aristath/gaffer/internal/modules/transfers"
	"github.com/aristath/gaffer/internal/simdata"
)

// InitializeServices creates all repositories and services and stores
// them in the container.
//
// The scoring pipeline's inputs depend on configuration: a configured
// dataset file supplies club records and fixture runs, otherwise both
// come from seeded simulated streams. Form history always comes from the
// simulated stream because datasets carry aggregate form, not
// per-gameweek histories.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Snapshot repository (needs snapshotsDB)
	container.SnapshotRepo = snapshots.NewRepository(
		container.SnapshotsDB.Conn(),
		log,
	)

	// Seed 0 asks for a fresh draw at startup. The drawn value is
	// logged so any session can be replayed.
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		log.Info().Int64("seed", seed).Msg("Drew simulation seed")
	}

	// Scoring context providers
	var (
		teams    evaluation.TeamSource
		fixtures scorers.FixtureProvider = simdata.NewFixtureRun(seed)
	)
	if cfg.DatasetPath != "" {
		store, err := dataset.Open(cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		container.Dataset = store
		teams = store
		fixtures = store
		log.Info().
			Str("path", store.Path()).
			Str("season", store.Current().Season()).
			Int("gameweek", store.Gameweek()).
			Msg("Dataset loaded")
	}

	// Master impact scorer with its five composites
	scoringCfg := scoring.DefaultConfig()
	scoringCfg.Seed = seed
	container.ScoringConfig = scoringCfg
	scorer := scorers.NewImpactScorer(
		scoringCfg,
		simdata.NewFormHistory(seed),
		fixtures,
		log,
	)

	// Evaluation service (worker pool for batch scoring)
	container.WorkerPool = workers.NewWorkerPool(cfg.Workers)
	container.Evaluator = evaluation.NewService(scorer, teams, container.WorkerPool, log)

	// Transfer optimizer with rule checker
	container.Checker = transfers.NewChecker(
		transfers.DefaultSquadRules(),
		transfers.DefaultTransferRules(),
	)
	container.Optimizer = transfers.NewOptimizer(container.Evaluator, container.Checker, log)

	// Backtest engine (replays strategies through the optimizer)
	container.Engine = backtest.NewEngine(container.Optimizer, log)

	return nil
}
