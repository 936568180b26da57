package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository"
	"freight-booking-backend/internal/storage"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	partyRepo   repository.PartyRepository
	vehicleRepo repository.VehicleRepository
	store       storage.StorageInterface
	storageCfg  storage.Config
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	partyRepo repository.PartyRepository,
	vehicleRepo repository.VehicleRepository,
	store storage.StorageInterface,
	storageCfg storage.Config,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		partyRepo:   partyRepo,
		vehicleRepo: vehicleRepo,
		store:       store,
		storageCfg:  storageCfg,
		now:         time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in BookingInput, proof *storage.Upload) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking")

	b := &domain.Booking{}
	if err := s.resolveMasterData(ctx, &in); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}
	in.applyTo(b)
	if b.BookingDate.IsZero() {
		b.BookingDate = s.now()
	}
	if b.Delivery.Status == "" {
		b.Delivery.Status = domain.DeliveryStatusPending
	}

	if err := s.prepare(b); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "bookingNo", b.BookingNo)
		return nil, err
	}

	key, err := s.saveProof(ctx, proof)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "bookingNo", b.BookingNo)
		return nil, err
	}
	if key != "" {
		b.Delivery.ProofImage = key
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		s.releaseProof(ctx, key)
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "bookingNo", b.BookingNo)
		return nil, err
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", b.ID, "bookingNo", b.BookingNo)
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	logger.EnterMethod("bookingService.ListBookings", "page", filter.Page, "pageSize", filter.PageSize)

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError("bookingService.ListBookings", err)
		return nil, 0, err
	}

	logger.ExitMethod("bookingService.ListBookings", "count", len(bookings), "total", total)
	return bookings, total, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id int64, in BookingInput, proof *storage.Upload) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.UpdateBooking", "bookingID", id)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}
	if err := s.resolveMasterData(ctx, &in); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}
	in.applyTo(b)

	if err := s.prepare(b); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}

	if err := s.saveWithProof(ctx, b, proof); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingService.UpdateBooking", "bookingID", id,
		"partyStatus", b.PaymentStatus.PartyPaymentStatus,
		"vehicleStatus", b.PaymentStatus.VehiclePaymentStatus)
	return b, nil
}

func (s *bookingService) UpdateDelivery(ctx context.Context, id int64, in DeliveryInput) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.UpdateDelivery", "bookingID", id)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateDelivery", err, "bookingID", id)
		return nil, err
	}

	if in.Status != nil {
		b.Delivery.Status = *in.Status
	}
	if in.Remarks != nil {
		b.Delivery.Remarks = strings.TrimSpace(*in.Remarks)
	}
	if err := finance.ValidateBooking(b).Err(); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateDelivery", err, "bookingID", id)
		return nil, err
	}

	if err := s.saveWithProof(ctx, b, in.Proof); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateDelivery", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingService.UpdateDelivery", "bookingID", id, "status", b.Delivery.Status)
	return b, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	logger.EnterMethod("bookingService.DeleteBooking", "bookingID", id)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.DeleteBooking", err, "bookingID", id)
		return err
	}
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("bookingService.DeleteBooking", err, "bookingID", id)
		return err
	}
	s.releaseProof(ctx, b.Delivery.ProofImage)

	logger.ExitMethod("bookingService.DeleteBooking", "bookingID", id)
	return nil
}

// MigrateBookingStructures rewrites every booking stored in the legacy
// charges shape and re-derives its totals. Bookings already in the current
// shape are skipped untouched, so amounts settled by the payment recorders
// are never recomputed. A booking that fails is recorded in the report and
// the run continues.
func (s *bookingService) MigrateBookingStructures(ctx context.Context) (*finance.MigrationReport, error) {
	logger.EnterMethod("bookingService.MigrateBookingStructures")

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		logger.ExitMethodWithError("bookingService.MigrateBookingStructures", err)
		return nil, err
	}

	report := &finance.MigrationReport{
		Total:  len(bookings),
		Errors: []finance.MigrationError{},
	}
	for _, original := range bookings {
		if err := ctx.Err(); err != nil {
			logger.ExitMethodWithError("bookingService.MigrateBookingStructures", err, "processed", report.Migrated+report.Skipped+report.Failed)
			return report, err
		}

		b, changed := finance.MigrateLegacyCharges(original)
		if !changed {
			report.Skipped++
			continue
		}
		if err := finance.DeriveBooking(&b); err != nil {
			report.Fail(original, err)
			logger.Warn("Booking migration failed", "bookingID", original.ID, "error", err)
			continue
		}
		if err := s.bookingRepo.Update(ctx, &b); err != nil {
			report.Fail(original, err)
			logger.Warn("Booking migration failed", "bookingID", original.ID, "error", err)
			continue
		}
		report.Migrated++
		logger.Debug("Booking migrated", "bookingID", b.ID)
	}

	logger.ExitMethod("bookingService.MigrateBookingStructures",
		"total", report.Total, "migrated", report.Migrated, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// prepare validates b and recomputes its derived fields.
func (s *bookingService) prepare(b *domain.Booking) error {
	if err := finance.ValidateBooking(b).Err(); err != nil {
		return err
	}
	return finance.DeriveBooking(b)
}

// resolveMasterData copies party and vehicle snapshots from master data when
// the input names an id instead of carrying the snapshot.
func (s *bookingService) resolveMasterData(ctx context.Context, in *BookingInput) error {
	if in.Party == nil && in.PartyID != nil {
		p, err := s.partyRepo.GetByID(ctx, *in.PartyID)
		if err != nil {
			return err
		}
		snap := p.Snapshot()
		in.Party = &snap
		if in.GSTIN == nil && p.GSTNumber != "" {
			in.GSTIN = &p.GSTNumber
		}
	}
	if in.Vehicle == nil && in.VehicleID != nil {
		v, err := s.vehicleRepo.GetByID(ctx, *in.VehicleID)
		if err != nil {
			return err
		}
		snap := v.Snapshot()
		in.Vehicle = &snap
	}
	return nil
}

// saveWithProof stores a replacement proof, persists b and then removes the
// proof it replaced. The new file is removed again if the update fails.
func (s *bookingService) saveWithProof(ctx context.Context, b *domain.Booking, proof *storage.Upload) error {
	key, err := s.saveProof(ctx, proof)
	if err != nil {
		return err
	}
	previous := b.Delivery.ProofImage
	if key != "" {
		b.Delivery.ProofImage = key
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		s.releaseProof(ctx, key)
		b.Delivery.ProofImage = previous
		return err
	}
	if key != "" && previous != "" && previous != key {
		s.releaseProof(ctx, previous)
	}
	return nil
}

func (s *bookingService) saveProof(ctx context.Context, proof *storage.Upload) (string, error) {
	if proof == nil || proof.Reader == nil {
		return "", nil
	}
	if err := s.storageCfg.Check(proof); err != nil {
		return "", domain.ValidationError{Field: "proofImage", Msg: err.Error(), Err: err}
	}
	key := storage.NewProofKey(proof.Filename)
	if err := s.store.SaveFile(ctx, key, proof.Reader); err != nil {
		return "", fmt.Errorf("failed to store proof image: %w", err)
	}
	return key, nil
}

func (s *bookingService) releaseProof(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.DeleteFile(ctx, key); err != nil {
		logger.Warn("Failed to delete proof image", "key", key, "error", err)
	}
}
