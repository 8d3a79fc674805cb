// Package di provides dependency injection for scheduler jobs.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/config"
	"github.com/aristath/gaffer/internal/scheduler"
)

// Job schedules. The cron parser accepts six-field expressions with a
// leading seconds column as well as @-descriptors.
const (
	// RescoreSchedule refreshes dataset scores every morning at 06:00,
	// after overnight price and availability changes land in the file.
	RescoreSchedule = "0 0 6 * * *"

	// HealthSnapshotSchedule samples CPU, RAM and database health.
	HealthSnapshotSchedule = "@every 15m"

	// MaintenanceSchedule checkpoints, vacuums and integrity-checks the
	// snapshots database once a week.
	MaintenanceSchedule = "@weekly"
)

// RegisterJobs creates the background jobs, registers them with a new
// scheduler, and stores both in the container. The rescore job is only
// registered when a dataset is configured; simulated streams are
// deterministic, so rescoring them would write identical rows.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	sched := scheduler.New(log)
	jobs := &JobInstances{}

	if container.Dataset != nil {
		rescore := scheduler.NewRescoreJob(container.Dataset, container.Evaluator, container.SnapshotRepo, log)
		if err := sched.AddJob(RescoreSchedule, rescore); err != nil {
			return fmt.Errorf("failed to schedule rescore job: %w", err)
		}
		jobs.Rescore = rescore
	}

	health := scheduler.NewHealthSnapshotJob(container.SnapshotsDB, log)
	if err := sched.AddJob(HealthSnapshotSchedule, health); err != nil {
		return fmt.Errorf("failed to schedule health snapshot job: %w", err)
	}
	jobs.HealthSnapshot = health

	maintenance := scheduler.NewMaintenanceJob(container.SnapshotsDB, log)
	if err := sched.AddJob(MaintenanceSchedule, maintenance); err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	jobs.Maintenance = maintenance

	container.Scheduler = sched
	container.Jobs = jobs

	return nil
}
