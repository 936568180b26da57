package jobs

import (
	"context"

	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/logger"
)

// MigrateBookingStructures rewrites legacy bookings into the current charges
// structure on a schedule.
func (jr *JobRunner) MigrateBookingStructures() {
	jr.runWithRecovery(JobMigrateBookingStructure, func() error {
		_, err := jr.RunBookingMigration(context.Background())
		return err
	})
}

func (jr *JobRunner) RunBookingMigration(ctx context.Context) (*finance.MigrationReport, error) {
	report, err := jr.services.Booking.MigrateBookingStructures(ctx)
	if err != nil {
		return report, err
	}

	log := logger.WithJob(JobMigrateBookingStructure)
	for _, e := range report.Errors {
		log.Warn("Booking not migrated", "bookingID", e.BookingID, "bookingNo", e.BookingNo, "error", e.Error)
	}
	log.Info("Booking structure migration finished",
		"total", report.Total,
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return report, nil
}
