// Package di provides dependency injection type definitions.
//
// This package defines the Container type which holds all application
// dependencies. The Container is the single source of truth for all
// service instances and is passed to the HTTP server for handler access.
package di

import (
	"github.com/aristath/gaffer/internal/database"
	"github.com/aristath/gaffer/internal/dataset"
	"github.com/aristath/gaffer/internal/evaluation"
	"github.com/aristath/gaffer/internal/evaluation/workers"
	"github.com/aristath/gaffer/internal/modules/backtest"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/snapshots"
	"github.com/aristath/gaffer/internal/modules/transfers"
	"github.com/aristath/gaffer/internal/scheduler"
)

// Container holds all dependencies for the application.
//
// The container is created by Wire() and passed to the HTTP server so
// handlers can reach services. All dependencies are injected via
// constructor injection.
type Container struct {
	// Database
	SnapshotsDB *database.DB // Score snapshots and persisted backtest runs (SQLite, WAL mode)

	// Repositories - data access layer
	SnapshotRepo *snapshots.Repository // Score snapshot and backtest run persistence

	// Data source
	// Nil when no dataset file is configured; scoring then runs entirely
	// on seeded simulated streams.
	Dataset *dataset.Store // Reloadable player/team/fixture dataset

	// Services - business logic layer
	ScoringConfig scoring.Config       // Weights and priors the evaluator was built with
	WorkerPool    *workers.WorkerPool  // Bounded goroutine pool for batch scoring
	Evaluator     *evaluation.Service  // Player evaluation and pool ranking
	Checker       *transfers.Checker   // Squad and transfer rule validation
	Optimizer     *transfers.Optimizer // Transfer combination search
	Engine        *backtest.Engine     // Historical strategy replay

	// Scheduler - cron-driven background jobs
	Scheduler *scheduler.Scheduler // Job runner; started and stopped by main
	Jobs      *JobInstances        // Job handles for manual triggering via API
}

// JobInstances holds the background jobs registered with the scheduler.
// Handlers use these to trigger a job run outside its schedule.
type JobInstances struct {
	Rescore        *scheduler.RescoreJob        // Daily dataset rescore (nil without a dataset)
	HealthSnapshot *scheduler.HealthSnapshotJob // Periodic CPU/RAM/database health sample
	Maintenance    *scheduler.MaintenanceJob    // Weekly checkpoint, vacuum and integrity check
}
