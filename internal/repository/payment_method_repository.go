package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type PaymentMethodRepository struct {
	DB *db.Postgres
}

func (r PaymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, active, created_at, updated_at
		FROM payment_methods
		WHERE NOT $1 OR active
		ORDER BY id ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r PaymentMethodRepository) Get(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, active, created_at, updated_at
		FROM payment_methods
		WHERE id=$1
	`, id).Scan(&m.ID, &m.Name, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r PaymentMethodRepository) Save(ctx context.Context, m domain.PaymentMethod) (*domain.PaymentMethod, error) {
	var row pgx.Row
	if m.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO payment_methods (name, active, created_at, updated_at)
			VALUES ($1,$2, now(), now())
			RETURNING id, name, active, created_at, updated_at
		`, m.Name, m.Active)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE payment_methods SET name=$1, active=$2, updated_at=now()
			WHERE id=$3
			RETURNING id, name, active, created_at, updated_at
		`, m.Name, m.Active, m.ID)
	}
	var out domain.PaymentMethod
	if err := row.Scan(&out.ID, &out.Name, &out.Active, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if IsDuplicate(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return &out, nil
}

// SeedDefaults inserts the payment methods every installation starts with.
func (r PaymentMethodRepository) SeedDefaults(ctx context.Context) error {
	for _, name := range []string{"Efectivo", "Tarjeta", "Transferencia"} {
		// Idempotent: payment_methods.name is unique.
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO payment_methods (name, active, created_at, updated_at)
			VALUES ($1, TRUE, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
