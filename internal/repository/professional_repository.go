package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type ProfessionalRepository struct {
	DB *db.Postgres
}

const professionalColumns = `id, name, specialty, phone, email, active, created_at, updated_at`

func scanProfessional(row interface {
	Scan(dest ...any) error
}) (*domain.Professional, error) {
	var p domain.Professional
	if err := row.Scan(&p.ID, &p.Name, &p.Specialty, &p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r ProfessionalRepository) List(ctx context.Context, activeOnly bool) ([]domain.Professional, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE deleted_at IS NULL AND (NOT $1 OR active)
		ORDER BY name ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r ProfessionalRepository) Upsert(ctx context.Context, p domain.Professional) (*domain.Professional, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO professionals (id, name, specialty, phone, email, active, created_at, updated_at)
		VALUES (COALESCE($1, nextval('professionals_id_seq')), $2,$3,$4,$5,$6, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name,
			specialty=EXCLUDED.specialty,
			phone=EXCLUDED.phone,
			email=EXCLUDED.email,
			active=EXCLUDED.active,
			updated_at=now(),
			deleted_at=NULL
		RETURNING `+professionalColumns, nullableID(p.ID), p.Name, p.Specialty, p.Phone, p.Email, p.Active)
	return scanProfessional(row)
}

func (r ProfessionalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE professionals SET deleted_at = now(), active = FALSE WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ProfessionalRepository) Get(ctx context.Context, id int64) (*domain.Professional, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+professionalColumns+`
		FROM professionals
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	p, err := scanProfessional(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
