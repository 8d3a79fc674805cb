package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/gaffer/internal/database"
)

const dbPingTimeout = 5 * time.Second

// HealthSnapshot is one captured reading of host and database health.
type HealthSnapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	CPUPercent float64   `json:"cpu_percent"`
	RAMPercent float64   `json:"ram_percent"`
	DBHealthy  bool      `json:"db_healthy"`
	DBSizeMB   float64   `json:"db_size_mb"`
	WALSizeMB  float64   `json:"wal_size_mb"`
}

// HealthSnapshotJob samples CPU, memory and database health every run
// and keeps the latest reading for the system status API.
type HealthSnapshotJob struct {
	log zerolog.Logger
	db  *database.DB

	mu   sync.Mutex
	last *HealthSnapshot
}

// NewHealthSnapshotJob creates a new health snapshot job
func NewHealthSnapshotJob(db *database.DB, log zerolog.Logger) *HealthSnapshotJob {
	return &HealthSnapshotJob{
		log: log.With().Str("job", "health_snapshot").Logger(),
		db:  db,
	}
}

// Name returns the job name
func (j *HealthSnapshotJob) Name() string {
	return "health_snapshot"
}

// Run captures one snapshot. A database ping failure fails the run; a
// host stat failure only degrades the reading.
func (j *HealthSnapshotJob) Run() error {
	snapshot := HealthSnapshot{Timestamp: time.Now()}

	// 100ms sample keeps the reading cheap while staying representative
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		j.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(cpuPercent) > 0 {
		snapshot.CPUPercent = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		j.log.Warn().Err(err).Msg("Failed to get memory statistics")
	} else {
		snapshot.RAMPercent = memStat.UsedPercent
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	dbErr := j.db.QuickCheck(ctx)
	snapshot.DBHealthy = dbErr == nil

	if stats, err := j.db.GetStats(); err != nil {
		j.log.Warn().Err(err).Msg("Failed to get database statistics")
	} else {
		snapshot.DBSizeMB = float64(stats.SizeBytes) / 1024 / 1024
		snapshot.WALSizeMB = float64(stats.WALSizeBytes) / 1024 / 1024
	}

	j.mu.Lock()
	j.last = &snapshot
	j.mu.Unlock()

	if dbErr != nil {
		j.log.Error().Err(dbErr).Msg("Database ping failed")
		return fmt.Errorf("database %s unreachable: %w", j.db.Name(), dbErr)
	}

	j.log.Debug().
		Float64("cpu_percent", snapshot.CPUPercent).
		Float64("ram_percent", snapshot.RAMPercent).
		Float64("db_size_mb", snapshot.DBSizeMB).
		Msg("Health snapshot captured")

	return nil
}

// Latest returns the most recent snapshot, false before the first run.
func (j *HealthSnapshotJob) Latest() (HealthSnapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.last == nil {
		return HealthSnapshot{}, false
	}
	return *j.last, true
}
