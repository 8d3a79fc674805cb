// Package di provides dependency injection for database connections.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/config"
	"github.com/aristath/gaffer/internal/database"
)

// InitializeDatabase opens the snapshots database and applies its schema.
//
// snapshots.db holds the two durable artifacts of the system: score
// snapshots written by the rescore job and completed backtest runs.
// Everything else (datasets, simulated streams, evaluations) is
// recomputed on demand.
func InitializeDatabase(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	snapshotsDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/snapshots.db",
		Profile: database.ProfileStandard,
		Name:    "snapshots",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshots database: %w", err)
	}

	if err := snapshotsDB.Migrate(); err != nil {
		snapshotsDB.Close()
		return nil, fmt.Errorf("failed to apply schema to %s: %w", snapshotsDB.Name(), err)
	}
	container.SnapshotsDB = snapshotsDB

	log.Info().Str("path", snapshotsDB.Path()).Msg("Database initialized and schema applied")

	return container, nil
}
