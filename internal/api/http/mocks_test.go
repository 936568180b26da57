package http_test

import (
	"context"
	"io"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/service"
	"freight-booking-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, in service.BookingInput, proof *storage.Upload) (*domain.Booking, error) {
	args := m.Called(ctx, in, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookingService) UpdateBooking(ctx context.Context, id int64, in service.BookingInput, proof *storage.Upload) (*domain.Booking, error) {
	args := m.Called(ctx, id, in, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateDelivery(ctx context.Context, id int64, in service.DeliveryInput) (*domain.Booking, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) DeleteBooking(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingService) MigrateBookingStructures(ctx context.Context) (*finance.MigrationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.MigrationReport), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPartyPayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentService) RecordVehiclePayment(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBookingLedger(ctx context.Context, bookingID int64) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) GetLedgerReport(ctx context.Context, filter domain.BookingFilter) (*domain.LedgerReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerReport), args.Error(1)
}
func (m *MockLedgerService) ExportLedgerReport(ctx context.Context, filter domain.BookingFilter, format export.Format) (*export.File, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}

// MockPartyService
type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) CreateParty(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}
func (m *MockPartyService) GetParty(ctx context.Context, id int64) (*domain.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) UpdateParty(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}
func (m *MockPartyService) DeleteParty(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPartyService) ListParties(ctx context.Context, query string, page, pageSize int32) ([]domain.Party, int64, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Party), args.Get(1).(int64), args.Error(2)
}

// MockVehicleService
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleService) ListVehicles(ctx context.Context, query string, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
