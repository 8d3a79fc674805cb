// Package scheduler runs gaffer's recurring background jobs on cron
// schedules: the daily rescore, the system health snapshot, and the
// weekly database maintenance pass.
package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// JobStatus describes one registered job for the system status API.
type JobStatus struct {
	Name      string `json:"name"`
	Schedule  string `json:"schedule"`
	Runs      int    `json:"runs"`
	LastRun   string `json:"last_run,omitempty"`
	LastError string `json:"last_error,omitempty"`
	Status    string `json:"status"` // "idle", "active", "failed"
}

type entry struct {
	job      Job
	schedule string
	runs     int
	lastRun  time.Time
	lastErr  error
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu      sync.Mutex
	entries []*entry
}

// New creates a new scheduler. A job still running when its next slot
// arrives is skipped, never overlapped.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		log: log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to drain.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a new job with cron schedule
// Schedule examples:
//   - "0 */5 * * * *"      - Every 5 minutes
//   - "@hourly"            - Every hour
//   - "0 0 6 * * *"        - 6 AM daily
//   - "@every 15m"         - Every 15 minutes
func (s *Scheduler) AddJob(schedule string, job Job) error {
	e := &entry{job: job, schedule: schedule}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runEntry(e)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")

	s.mu.Lock()
	for _, e := range s.entries {
		if e.job == job {
			s.mu.Unlock()
			return s.runEntry(e)
		}
	}
	s.mu.Unlock()

	return job.Run()
}

// Lookup finds a registered job by name.
func (s *Scheduler) Lookup(name string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.job.Name() == name {
			return e.job, true
		}
	}
	return nil, false
}

// Status snapshots every registered job for the system API.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.entries))
	for _, e := range s.entries {
		status := JobStatus{
			Name:     e.job.Name(),
			Schedule: e.schedule,
			Runs:     e.runs,
			Status:   "idle",
		}
		if !e.lastRun.IsZero() {
			status.LastRun = e.lastRun.Format(time.RFC3339)
			status.Status = "active"
		}
		if e.lastErr != nil {
			status.LastError = e.lastErr.Error()
			status.Status = "failed"
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *Scheduler) runEntry(e *entry) error {
	s.log.Debug().Str("job", e.job.Name()).Msg("Running job")

	err := e.job.Run()

	s.mu.Lock()
	e.runs++
	e.lastRun = time.Now()
	e.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Error().
			Err(err).
			Str("job", e.job.Name()).
			Msg("Job failed")
	} else {
		s.log.Debug().Str("job", e.job.Name()).Msg("Job completed")
	}

	return err
}
