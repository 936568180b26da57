package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"freight-booking-backend/internal/config"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/service"
)

const (
	JobKeepAlive               = "keep-alive"
	JobMigrateBookingStructure = "migrate-booking-structure"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	client   *http.Client
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Booking service.BookingService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	timeout := time.Duration(cfg.Scheduler.KeepAliveTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &JobRunner{
		services: services,
		config:   cfg,
		client:   &http.Client{Timeout: timeout},
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) (err error) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	start := time.Now()
	log.Info("Starting job")
	if err := jobFunc(); err != nil {
		log.Error("Job failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	log.Info("Job completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// RunOnce runs a single job by name, for manual execution
func (jr *JobRunner) RunOnce(ctx context.Context, name string) error {
	switch name {
	case JobKeepAlive:
		return jr.runWithRecovery(name, func() error { return jr.PingKeepAlive(ctx) })
	case JobMigrateBookingStructure:
		return jr.runWithRecovery(name, func() error {
			_, err := jr.RunBookingMigration(ctx)
			return err
		})
	default:
		return fmt.Errorf("unknown job %q (expected %s or %s)", name, JobKeepAlive, JobMigrateBookingStructure)
	}
}
