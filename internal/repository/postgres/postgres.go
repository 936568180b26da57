package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.PartyRepository
	repository.VehicleRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		BookingRepository: NewBookingRepository(db),
		PartyRepository:   NewPartyRepository(db),
		VehicleRepository: NewVehicleRepository(db),
	}
}

// EnsureSchema creates the tables if they do not exist yet. Every statement
// in schema.sql is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.DatabaseCall("EXEC", "schema.sql")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("EXEC", 0, err, "statement", "schema.sql")
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
