package repository

import (
	"context"

	"freight-booking-backend/internal/domain"
)

// BookingRepository persists bookings. GetByID and Update return
// domain.NotFoundError for unknown ids and Create returns domain.ConflictError
// for a duplicate booking number.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBookingNo(ctx context.Context, bookingNo string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	Update(ctx context.Context, party *domain.Party) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Party, int64, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Vehicle, int64, error)
}
