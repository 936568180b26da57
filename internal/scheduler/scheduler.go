package scheduler

import (
	"time"

	"freight-booking-backend/internal/jobs"
	"freight-booking-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers the jobs whose schedule is configured. A job with
// an empty schedule stays unregistered.
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if cfg.KeepAlive != "" && cfg.KeepAliveURL != "" {
		if _, err := s.cron.AddFunc(cfg.KeepAlive, s.jobs.KeepAlive); err != nil {
			logger.Error("Failed to register KeepAlive job", "error", err)
		}
	}

	if cfg.MigrateBookingStructure != "" {
		if _, err := s.cron.AddFunc(cfg.MigrateBookingStructure, s.jobs.MigrateBookingStructures); err != nil {
			logger.Error("Failed to register MigrateBookingStructures job", "error", err)
		}
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any job is registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
