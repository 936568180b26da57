package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/repository"
)

type partyRepository struct {
	db *sql.DB
}

func NewPartyRepository(db *sql.DB) repository.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, p *domain.Party) error {
	now := time.Now()
	query := `INSERT INTO parties (name, address, contact, gst_number, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Address, p.Contact, p.GSTNumber, now, now).Scan(&p.ID); err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r *partyRepository) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	p := &domain.Party{}
	query := `SELECT id, name, address, contact, gst_number, created_at, updated_at FROM parties WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Address, &p.Contact, &p.GSTNumber, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "party", ID: id, Err: err}
		}
		return nil, err
	}
	return p, nil
}

func (r *partyRepository) Update(ctx context.Context, p *domain.Party) error {
	now := time.Now()
	query := `UPDATE parties SET name=$1, address=$2, contact=$3, gst_number=$4, updated_at=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Address, p.Contact, p.GSTNumber, now, p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NotFoundError{Resource: "party", ID: p.ID}
	}
	p.UpdatedAt = now
	return nil
}

func (r *partyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NotFoundError{Resource: "party", ID: id}
	}
	return nil
}

func (r *partyRepository) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Party, int64, error) {
	query := `SELECT id, name, address, contact, gst_number, created_at, updated_at FROM parties`
	args := []any{}
	argIdx := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE name ILIKE $%d OR contact ILIKE $%d OR gst_number ILIKE $%d", argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+query+") AS sub", args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY name ASC"
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

	parties := []domain.Party{}
	for rows.Next() {
		var p domain.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Contact, &p.GSTNumber, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		parties = append(parties, p)
	}
	return parties, count, rows.Err()
}
