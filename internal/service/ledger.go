package service

import (
	"context"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository"
)

type ledgerService struct {
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewLedgerService(bookingRepo repository.BookingRepository) LedgerService {
	return &ledgerService{
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

func (s *ledgerService) GetBookingLedger(ctx context.Context, bookingID int64) ([]domain.LedgerEntry, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return finance.BookingLedger(*b), nil
}

// GetLedgerReport builds the ledger over every booking matching the filter.
// Paging is ignored so the summary always covers the full selection.
func (s *ledgerService) GetLedgerReport(ctx context.Context, filter domain.BookingFilter) (*domain.LedgerReport, error) {
	logger.EnterMethod("ledgerService.GetLedgerReport", "partyName", filter.PartyName)

	filter.Page = 0
	filter.PageSize = 0
	bookings, _, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError("ledgerService.GetLedgerReport", err)
		return nil, err
	}

	report := finance.BuildLedgerReport(bookings, s.now())
	logger.ExitMethod("ledgerService.GetLedgerReport",
		"bookings", report.Summary.Bookings,
		"entries", len(report.Entries),
		"closingBalance", report.Summary.ClosingBalance.String())
	return &report, nil
}

func (s *ledgerService) ExportLedgerReport(ctx context.Context, filter domain.BookingFilter, format export.Format) (*export.File, error) {
	report, err := s.GetLedgerReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	title := "Ledger"
	if filter.PartyName != "" {
		title = "Ledger - " + filter.PartyName
	}
	file, err := export.Ledger(*report, format, title)
	if err != nil {
		logger.Error("Failed to export ledger", "format", format, "error", err)
		return nil, err
	}
	return file, nil
}
