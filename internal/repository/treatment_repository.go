package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type TreatmentRepository struct {
	DB *db.Postgres
}

const treatmentColumns = `id, parent_id, name, description, price, duration_minutes, created_at, updated_at`

func scanTreatment(row interface {
	Scan(dest ...any) error
}) (*domain.Treatment, error) {
	var (
		t        domain.Treatment
		parentID pgtype.Int8
	)
	if err := row.Scan(&t.ID, &parentID, &t.Name, &t.Description, &t.Price, &t.DurationMinutes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		t.ParentID = &parentID.Int64
	}
	return &t, nil
}

// List returns base treatments with their sub-treatments nested.
func (r TreatmentRepository) List(ctx context.Context) ([]domain.Treatment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments
		WHERE deleted_at IS NULL
		ORDER BY parent_id NULLS FIRST, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []domain.Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nestTreatments(all), nil
}

func nestTreatments(all []domain.Treatment) []domain.Treatment {
	children := make(map[int64][]domain.Treatment)
	var bases []domain.Treatment
	for _, t := range all {
		if t.ParentID == nil {
			bases = append(bases, t)
			continue
		}
		children[*t.ParentID] = append(children[*t.ParentID], t)
	}
	for i := range bases {
		bases[i].SubTreatments = children[bases[i].ID]
	}
	return bases
}

func (r TreatmentRepository) Get(ctx context.Context, id int64) (*domain.Treatment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	t, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Save inserts or updates a treatment. A parent must be an existing base
// treatment, and a treatment that owns sub-treatments cannot become one.
func (r TreatmentRepository) Save(ctx context.Context, t domain.Treatment) (*domain.Treatment, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if t.ParentID != nil {
		if t.ID != 0 && *t.ParentID == t.ID {
			return nil, fmt.Errorf("%w: a treatment cannot be its own parent", domain.ErrInvalidInput)
		}
		var grandParent pgtype.Int8
		err := tx.QueryRow(ctx, `SELECT parent_id FROM treatments WHERE id=$1 AND deleted_at IS NULL`, *t.ParentID).Scan(&grandParent)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: parent treatment", ErrNotFound)
			}
			return nil, err
		}
		if grandParent.Valid {
			return nil, fmt.Errorf("%w: parent must be a base treatment", domain.ErrInvalidInput)
		}
		if t.ID != 0 {
			var children int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM treatments WHERE parent_id=$1 AND deleted_at IS NULL`, t.ID).Scan(&children); err != nil {
				return nil, err
			}
			if children > 0 {
				return nil, fmt.Errorf("%w: treatment has sub-treatments", domain.ErrInvalidInput)
			}
		}
	}

	var row pgx.Row
	if t.ID == 0 {
		row = tx.QueryRow(ctx, `
			INSERT INTO treatments (parent_id, name, description, price, duration_minutes, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5, now(), now())
			RETURNING `+treatmentColumns, t.ParentID, t.Name, t.Description, t.Price, t.DurationMinutes)
	} else {
		row = tx.QueryRow(ctx, `
			UPDATE treatments
			SET parent_id=$1, name=$2, description=$3, price=$4, duration_minutes=$5, updated_at=now()
			WHERE id=$6 AND deleted_at IS NULL
			RETURNING `+treatmentColumns, t.ParentID, t.Name, t.Description, t.Price, t.DurationMinutes, t.ID)
	}
	saved, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete soft-deletes a treatment together with its sub-treatments.
func (r TreatmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE treatments SET deleted_at = now()
		WHERE (id=$1 OR parent_id=$1) AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
