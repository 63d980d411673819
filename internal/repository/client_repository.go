package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type ClientRepository struct {
	DB *db.Postgres
}

// List returns clients by name. search matches name, phone or email when set.
func (r ClientRepository) List(ctx context.Context, search string, limit int) ([]domain.Client, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, phone, email, notes, created_at, updated_at
		FROM clients
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2
	`, search, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r ClientRepository) Upsert(ctx context.Context, c domain.Client) (*domain.Client, error) {
	var out domain.Client
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO clients (id, name, phone, email, notes, created_at, updated_at)
		VALUES (COALESCE($1, nextval('clients_id_seq')), $2, $3, $4, $5, now(), now())
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, phone=EXCLUDED.phone, email=EXCLUDED.email, notes=EXCLUDED.notes, updated_at=now(), deleted_at=NULL
		RETURNING id, name, phone, email, notes, created_at, updated_at
	`, nullableID(c.ID), c.Name, c.Phone, c.Email, c.Notes).Scan(&out.ID, &out.Name, &out.Phone, &out.Email, &out.Notes, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE clients SET deleted_at = now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ClientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, phone, email, notes, created_at, updated_at
		FROM clients
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
