package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/repository"

	"github.com/lib/pq"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func mapVehicleError(err error, vehicleNo string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ConflictError{Resource: "vehicle", Msg: fmt.Sprintf("vehicle %q already exists", vehicleNo), Err: err}
	}
	return err
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	now := time.Now()
	query := `INSERT INTO vehicles (vehicle_no, owner_name, owner_contact, vehicle_type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, v.VehicleNo, v.OwnerName, v.OwnerContact, v.VehicleType, now, now).Scan(&v.ID); err != nil {
		return mapVehicleError(err, v.VehicleNo)
	}
	v.CreatedAt, v.UpdatedAt = now, now
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, vehicle_no, owner_name, owner_contact, vehicle_type, created_at, updated_at FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.VehicleNo, &v.OwnerName, &v.OwnerContact, &v.VehicleType, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "vehicle", ID: id, Err: err}
		}
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	now := time.Now()
	query := `UPDATE vehicles SET vehicle_no=$1, owner_name=$2, owner_contact=$3, vehicle_type=$4, updated_at=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, v.VehicleNo, v.OwnerName, v.OwnerContact, v.VehicleType, now, v.ID)
	if err != nil {
		return mapVehicleError(err, v.VehicleNo)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NotFoundError{Resource: "vehicle", ID: v.ID}
	}
	v.UpdatedAt = now
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	query := `SELECT id, vehicle_no, owner_name, owner_contact, vehicle_type, created_at, updated_at FROM vehicles`
	args := []any{}
	argIdx := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE vehicle_no ILIKE $%d OR owner_name ILIKE $%d", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+query+") AS sub", args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY vehicle_no ASC"
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleNo, &v.OwnerName, &v.OwnerContact, &v.VehicleType, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
