package service

import (
	"context"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository"
)

type paymentService struct {
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewPaymentService(bookingRepo repository.BookingRepository) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

type recordFunc func(*domain.Booking, finance.PaymentInput, time.Time) (domain.PaymentRecord, error)

func (s *paymentService) RecordPartyPayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error) {
	return s.record(ctx, "paymentService.RecordPartyPayment", bookingID, in, finance.RecordPartyPayment)
}

func (s *paymentService) RecordVehiclePayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error) {
	return s.record(ctx, "paymentService.RecordVehiclePayment", bookingID, in, finance.RecordVehiclePayment)
}

// record loads the booking, applies the payment and persists it. Nothing is
// written when the payment is rejected.
func (s *paymentService) record(ctx context.Context, method string, bookingID int64, in finance.PaymentInput, apply recordFunc) (*domain.Booking, error) {
	logger.EnterMethod(method, "bookingID", bookingID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError(method, err, "bookingID", bookingID)
		return nil, err
	}

	record, err := apply(b, in, s.now())
	if err != nil {
		logger.ExitMethodWithError(method, err, "bookingID", bookingID)
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		logger.ExitMethodWithError(method, err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod(method, "bookingID", bookingID,
		"amount", record.Amount.String(),
		"mode", record.Mode,
		"partyStatus", b.PaymentStatus.PartyPaymentStatus,
		"vehicleStatus", b.PaymentStatus.VehiclePaymentStatus)
	return b, nil
}
