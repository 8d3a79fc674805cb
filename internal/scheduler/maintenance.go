package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/database"
)

const integrityCheckTimeout = 30 * time.Second

// MaintenanceJob keeps the snapshot database lean: checkpoint the WAL,
// vacuum, then verify integrity. Scheduled weekly, off the busy hours.
type MaintenanceJob struct {
	log zerolog.Logger
	db  *database.DB
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(db *database.DB, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		log: log.With().Str("job", "maintenance").Logger(),
		db:  db,
	}
}

// Name returns the job name
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Run executes the maintenance pass
func (j *MaintenanceJob) Run() error {
	j.log.Info().Str("database", j.db.Name()).Msg("Starting database maintenance")
	startTime := time.Now()

	// TRUNCATE resets the WAL file to minimal size
	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		return fmt.Errorf("wal checkpoint failed: %w", err)
	}

	if err := j.db.Vacuum(); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrityCheckTimeout)
	defer cancel()

	if err := j.db.HealthCheck(ctx); err != nil {
		j.log.Error().Err(err).Msg("Integrity check failed after maintenance")
		return err
	}

	j.log.Info().
		Str("database", j.db.Name()).
		Dur("duration", time.Since(startTime)).
		Msg("Database maintenance complete")

	return nil
}
