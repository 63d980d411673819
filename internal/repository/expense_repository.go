package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type ExpenseRepository struct {
	DB *db.Postgres
}

type CreateExpenseInput struct {
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
}

const expenseColumns = `id, expense_date, description, amount, category, payment_method, created_at`

func (r ExpenseRepository) Create(ctx context.Context, in CreateExpenseInput) (*domain.Expense, error) {
	var e domain.Expense
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO expenses (expense_date, description, amount, category, payment_method, created_at)
		VALUES ($1::date,$2,$3,$4,$5, now())
		RETURNING `+expenseColumns,
		in.Date.Format(dateLayout), in.Description, in.Amount, in.Category, in.PaymentMethod,
	).Scan(&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category, &e.PaymentMethod, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns expenses between from and to inclusive, newest first. A zero
// bound leaves that side open.
func (r ExpenseRepository) List(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE deleted_at IS NULL
		  AND ($1::date IS NULL OR expense_date >= $1::date)
		  AND ($2::date IS NULL OR expense_date <= $2::date)
		ORDER BY expense_date DESC, id DESC
	`, optionalDate(from), optionalDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category, &e.PaymentMethod, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// On returns the expenses of a single day in insertion order.
func (r ExpenseRepository) On(ctx context.Context, date time.Time) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE deleted_at IS NULL AND expense_date = $1::date
		ORDER BY id ASC
	`, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category, &e.PaymentMethod, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r ExpenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE expenses SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func optionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
