package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const bookingColumns = `id, booking_no, booking_date, COALESCE(gstin, ''), party, vehicle, journey,
	delivery, charges, vehicle_payment, payment_status, created_at, updated_at`

// sortColumns whitelists the columns a booking list can be ordered by.
var sortColumns = map[string]string{
	"bookingDate": "booking_date",
	"bookingNo":   "booking_no",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// bookingDocuments are the JSONB sub-documents of a booking, in column order.
func bookingDocuments(b *domain.Booking) ([]any, error) {
	docs := []any{b.Party, b.Vehicle, b.Journey, b.Delivery, b.Charges, b.VehiclePayment, b.PaymentStatus}
	out := make([]any, len(docs))
	for i, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to encode booking document: %w", err)
		}
		// lib/pq sends []byte as bytea, jsonb columns need text.
		out[i] = string(data)
	}
	return out, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                                                            domain.Booking
		party, vehicle, journey, delivery, charges, vp, paymentState []byte
	)
	if err := row.Scan(&b.ID, &b.BookingNo, &b.BookingDate, &b.GSTIN,
		&party, &vehicle, &journey, &delivery, &charges, &vp, &paymentState,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	docs := []struct {
		raw  []byte
		into any
	}{
		{party, &b.Party},
		{vehicle, &b.Vehicle},
		{journey, &b.Journey},
		{delivery, &b.Delivery},
		{charges, &b.Charges},
		{vp, &b.VehiclePayment},
		{paymentState, &b.PaymentStatus},
	}
	for _, d := range docs {
		if len(d.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(d.raw, d.into); err != nil {
			return nil, fmt.Errorf("failed to decode booking %d: %w", b.ID, err)
		}
	}
	return &b, nil
}

func mapBookingError(err error, bookingNo string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("booking number %q already exists", bookingNo),
			Err:      err,
		}
	}
	return err
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.Create", "bookingNo", b.BookingNo)

	docs, err := bookingDocuments(b)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Create", err)
		return err
	}

	now := time.Now()
	query := `
		INSERT INTO bookings (
			booking_no, booking_date, gstin, party, vehicle, journey, delivery,
			charges, vehicle_payment, payment_status, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	args := append([]any{b.BookingNo, b.BookingDate, b.GSTIN}, docs...)
	args = append(args, now, now)

	logger.DatabaseCall("INSERT", "bookings", "bookingNo", b.BookingNo)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID)
	logger.DatabaseResult("INSERT", 1, err, "table", "bookings")
	if err != nil {
		err = mapBookingError(err, b.BookingNo)
		logger.ExitMethodWithError("bookingRepository.Create", err, "bookingNo", b.BookingNo)
		return err
	}

	b.CreatedAt = now
	b.UpdatedAt = now
	logger.ExitMethod("bookingRepository.Create", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	logger.EnterMethod("bookingRepository.GetByID", "bookingID", id)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.NotFoundError{Resource: "booking", ID: id, Err: err}
		}
		logger.ExitMethodWithError("bookingRepository.GetByID", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingRepository.GetByID", "bookingID", id)
	return b, nil
}

func (r *bookingRepository) GetByBookingNo(ctx context.Context, bookingNo string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_no = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "booking", ID: bookingNo, Err: err}
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.Update", "bookingID", b.ID)

	docs, err := bookingDocuments(b)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Update", err)
		return err
	}

	now := time.Now()
	query := `
		UPDATE bookings SET
			booking_no = $1,
			booking_date = $2,
			gstin = NULLIF($3, ''),
			party = $4,
			vehicle = $5,
			journey = $6,
			delivery = $7,
			charges = $8,
			vehicle_payment = $9,
			payment_status = $10,
			updated_at = $11
		WHERE id = $12
	`
	args := append([]any{b.BookingNo, b.BookingDate, b.GSTIN}, docs...)
	args = append(args, now, b.ID)

	logger.DatabaseCall("UPDATE", "bookings", "bookingID", b.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "table", "bookings")
		err = mapBookingError(err, b.BookingNo)
		logger.ExitMethodWithError("bookingRepository.Update", err, "bookingID", b.ID)
		return err
	}
	affected, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", affected, err, "table", "bookings")
	if err != nil {
		return err
	}
	if affected == 0 {
		err := domain.NotFoundError{Resource: "booking", ID: b.ID}
		logger.ExitMethodWithError("bookingRepository.Update", err, "bookingID", b.ID)
		return err
	}

	b.UpdatedAt = now
	logger.ExitMethod("bookingRepository.Update", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	logger.EnterMethod("bookingRepository.Delete", "bookingID", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Delete", err, "bookingID", id)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking", ID: id}
	}

	logger.ExitMethod("bookingRepository.Delete", "bookingID", id)
	return nil
}

// List returns one page of bookings matching filter together with the total
// number of matches. A zero page size returns every match.
func (r *bookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	logger.EnterMethod("bookingRepository.List", "page", f.Page, "pageSize", f.PageSize)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.PartyName != "" {
		query += fmt.Sprintf(" AND party->>'name' ILIKE $%d", argIdx)
		args = append(args, "%"+f.PartyName+"%")
		argIdx++
	}
	if f.VehicleNo != "" {
		query += fmt.Sprintf(" AND vehicle->>'vehicleNo' ILIKE $%d", argIdx)
		args = append(args, "%"+f.VehicleNo+"%")
		argIdx++
	}
	if f.DeliveryStatus != "" {
		query += fmt.Sprintf(" AND delivery->>'status' = $%d", argIdx)
		args = append(args, string(f.DeliveryStatus))
		argIdx++
	}
	if f.PartyPaymentStatus != "" {
		query += fmt.Sprintf(" AND payment_status->>'partyPaymentStatus' = $%d", argIdx)
		args = append(args, string(f.PartyPaymentStatus))
		argIdx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND booking_date >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND booking_date <= $%d", argIdx)
		args = append(args, *f.To)
		argIdx++
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		query += fmt.Sprintf(" AND (booking_no ILIKE $%d OR party->>'name' ILIKE $%d OR vehicle->>'vehicleNo' ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+q+"%")
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		logger.ExitMethodWithError("bookingRepository.List", err)
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "booking_date"
	}
	order := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", column, order, order)

	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, f.PageSize, (page-1)*f.PageSize)
	}

	bookings, err := r.query(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.List", err)
		return nil, 0, err
	}

	logger.ExitMethod("bookingRepository.List", "count", len(bookings), "total", count)
	return bookings, count, nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
