package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/gaffer/internal/database"
	"github.com/aristath/gaffer/internal/di"
	"github.com/aristath/gaffer/internal/scheduler"
)

const statusPingTimeout = 5 * time.Second

// SystemHandlers handles system-wide monitoring and job trigger endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	startupTime time.Time
	snapshotsDB *database.DB
	sched       *scheduler.Scheduler
	jobs        *di.JobInstances
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	snapshotsDB *database.DB,
	sched *scheduler.Scheduler,
	jobs *di.JobInstances,
) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		dataDir:     dataDir,
		startupTime: time.Now(),
		snapshotsDB: snapshotsDB,
		sched:       sched,
		jobs:        jobs,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	Status             string  `json:"status"` // "healthy" or "unhealthy"
	UptimeSeconds      float64 `json:"uptime_seconds"`
	CPUPercent         float64 `json:"cpu_percent"`
	RAMPercent         float64 `json:"ram_percent"`
	SnapshotCount      int     `json:"snapshot_count"`
	BacktestRuns       int     `json:"backtest_runs"`
	LastScoredGameweek int     `json:"last_scored_gameweek,omitempty"`
}

// JobsStatusResponse lists every background job registered with the
// scheduler.
type JobsStatusResponse struct {
	TotalJobs int                   `json:"total_jobs"`
	Jobs      []scheduler.JobStatus `json:"jobs"`
	LastRun   string                `json:"last_run,omitempty"`
}

// DatabaseStatsResponse summarizes the database files on disk.
type DatabaseStatsResponse struct {
	Databases   []DBInfo `json:"databases"`
	TotalSizeMB float64  `json:"total_size_mb"`
	LastChecked string   `json:"last_checked"`
}

// DBInfo is one database file's size and page layout counters.
type DBInfo struct {
	Name          string  `json:"name"`
	Path          string  `json:"path"`
	SizeMB        float64 `json:"size_mb"`
	WALSizeMB     float64 `json:"wal_size_mb"`
	PageCount     int64   `json:"page_count"`
	FreelistCount int64   `json:"freelist_count"`
}

// DiskUsageResponse reports how much disk the data directory uses.
type DiskUsageResponse struct {
	DataDir   string  `json:"data_dir"`
	DataDirMB float64 `json:"data_dir_mb"`
}

// systemStatus collects the current status snapshot. Individual probe
// failures degrade the reading and are logged, they never abort it.
func (h *SystemHandlers) systemStatus() SystemStatusResponse {
	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusPingTimeout)
	defer cancel()
	if err := h.snapshotsDB.QuickCheck(ctx); err != nil {
		h.log.Error().Err(err).Msg("Database ping failed")
		response.Status = "unhealthy"
	}

	response.CPUPercent, response.RAMPercent = h.getSystemStats()

	conn := h.snapshotsDB.Conn()
	if err := conn.QueryRow(`SELECT COUNT(*) FROM score_snapshots`).Scan(&response.SnapshotCount); err != nil {
		h.log.Warn().Err(err).Msg("Failed to count score snapshots")
	}
	if err := conn.QueryRow(`SELECT COUNT(*) FROM backtest_runs`).Scan(&response.BacktestRuns); err != nil {
		h.log.Warn().Err(err).Msg("Failed to count backtest runs")
	}
	if err := conn.QueryRow(`SELECT COALESCE(MAX(gameweek), 0) FROM score_snapshots`).Scan(&response.LastScoredGameweek); err != nil {
		h.log.Warn().Err(err).Msg("Failed to read last scored gameweek")
	}

	return response
}

// HandleSystemStatus returns uptime, host usage and database row counts
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	h.writeJSON(w, h.systemStatus())
}

// HandleJobsStatus returns the status of every registered job
// GET /api/system/jobs
func (h *SystemHandlers) HandleJobsStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting jobs status")

	jobs := h.sched.Status()

	// RFC3339 timestamps from the same clock sort lexically
	var lastRun string
	for _, job := range jobs {
		if job.LastRun > lastRun {
			lastRun = job.LastRun
		}
	}

	h.writeJSON(w, JobsStatusResponse{
		TotalJobs: len(jobs),
		Jobs:      jobs,
		LastRun:   lastRun,
	})
}

// HandleHealthSnapshot returns the latest reading captured by the
// health snapshot job
// GET /api/system/health
func (h *SystemHandlers) HandleHealthSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.jobs.HealthSnapshot == nil {
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": "Health snapshot job not registered",
		})
		return
	}

	snapshot, ok := h.jobs.HealthSnapshot.Latest()
	if !ok {
		h.writeJSON(w, map[string]string{
			"status":  "pending",
			"message": "No health snapshot captured yet",
		})
		return
	}

	h.writeJSON(w, snapshot)
}

// HandleDatabaseStats returns size and page statistics for the
// snapshots database
// GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	databases := []DBInfo{}
	totalSizeMB := 0.0

	stats, err := h.snapshotsDB.GetStats()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get database stats")
	} else {
		sizeMB := float64(stats.SizeBytes) / 1024 / 1024
		totalSizeMB += sizeMB

		databases = append(databases, DBInfo{
			Name:          h.snapshotsDB.Name(),
			Path:          h.snapshotsDB.Path(),
			SizeMB:        sizeMB,
			WALSizeMB:     float64(stats.WALSizeBytes) / 1024 / 1024,
			PageCount:     stats.PageCount,
			FreelistCount: stats.FreelistCount,
		})
	}

	h.writeJSON(w, DatabaseStatsResponse{
		Databases:   databases,
		TotalSizeMB: totalSizeMB,
		LastChecked: time.Now().Format(time.RFC3339),
	})
}

// HandleDiskUsage returns disk usage of the data directory
// GET /api/system/disk
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting disk usage")

	h.writeJSON(w, DiskUsageResponse{
		DataDir:   h.dataDir,
		DataDirMB: h.getDirSize(h.dataDir),
	})
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages.
// The 100ms CPU sample matches the health snapshot job's budget.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// ============================================================================
// Job Trigger Endpoints
// ============================================================================

// HandleTriggerRescore triggers the rescore job immediately
// POST /api/system/jobs/rescore
func (h *SystemHandlers) HandleTriggerRescore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.jobs == nil || h.jobs.Rescore == nil {
		h.log.Warn().Msg("Rescore job not registered")
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": "Rescore job not registered (no dataset configured)",
		})
		return
	}

	h.log.Info().Msg("Manual rescore triggered")

	if err := h.sched.RunNow(h.jobs.Rescore); err != nil {
		h.log.Error().Err(err).Msg("Failed to run rescore")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status":  "success",
		"message": "Rescore triggered successfully",
	})
}

// HandleTriggerHealthSnapshot triggers the health snapshot job immediately
// POST /api/system/jobs/health-snapshot
func (h *SystemHandlers) HandleTriggerHealthSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.jobs == nil || h.jobs.HealthSnapshot == nil {
		h.log.Warn().Msg("Health snapshot job not registered")
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": "Health snapshot job not registered",
		})
		return
	}

	h.log.Info().Msg("Manual health snapshot triggered")

	if err := h.sched.RunNow(h.jobs.HealthSnapshot); err != nil {
		h.log.Error().Err(err).Msg("Failed to run health snapshot")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status":  "success",
		"message": "Health snapshot triggered successfully",
	})
}

// HandleTriggerMaintenance triggers the database maintenance job immediately
// POST /api/system/jobs/maintenance
func (h *SystemHandlers) HandleTriggerMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.jobs == nil || h.jobs.Maintenance == nil {
		h.log.Warn().Msg("Maintenance job not registered")
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": "Maintenance job not registered",
		})
		return
	}

	h.log.Info().Msg("Manual maintenance triggered")

	if err := h.sched.RunNow(h.jobs.Maintenance); err != nil {
		h.log.Error().Err(err).Msg("Failed to run maintenance")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status":  "success",
		"message": "Maintenance triggered successfully",
	})
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
