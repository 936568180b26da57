package service

import (
	"context"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/storage"
)

type BookingService interface {
	CreateBooking(ctx context.Context, in BookingInput, proof *storage.Upload) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error)
	UpdateBooking(ctx context.Context, id int64, in BookingInput, proof *storage.Upload) (*domain.Booking, error)
	UpdateDelivery(ctx context.Context, id int64, in DeliveryInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	MigrateBookingStructures(ctx context.Context) (*finance.MigrationReport, error)
}

type PaymentService interface {
	RecordPartyPayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error)
	RecordVehiclePayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error)
}

type LedgerService interface {
	GetBookingLedger(ctx context.Context, bookingID int64) ([]domain.LedgerEntry, error)
	GetLedgerReport(ctx context.Context, filter domain.BookingFilter) (*domain.LedgerReport, error)
	ExportLedgerReport(ctx context.Context, filter domain.BookingFilter, format export.Format) (*export.File, error)
}

type PartyService interface {
	CreateParty(ctx context.Context, party *domain.Party) error
	GetParty(ctx context.Context, id int64) (*domain.Party, error)
	UpdateParty(ctx context.Context, party *domain.Party) error
	DeleteParty(ctx context.Context, id int64) error
	ListParties(ctx context.Context, query string, page, pageSize int32) ([]domain.Party, int64, error)
}

type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
	ListVehicles(ctx context.Context, query string, page, pageSize int32) ([]domain.Vehicle, int64, error)
}
