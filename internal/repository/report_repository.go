package repository

import (
	"context"
	"time"

	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

// ReportRepository loads the data the daily report is built from.
type ReportRepository struct {
	DB *db.Postgres
}

// AppointmentsOn returns every appointment of date with its related names
// and its sales, each carrying payments and payment method names.
func (r ReportRepository) AppointmentsOn(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	appts, err := AppointmentRepository{DB: r.DB}.ListByDate(ctx, date, nil)
	if err != nil || len(appts) == 0 {
		return appts, err
	}

	ids := make([]int64, len(appts))
	index := make(map[int64]int, len(appts))
	for i, a := range appts {
		ids[i] = a.ID
		index[a.ID] = i
	}

	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, code, appointment_id, client_id, total, created_at
		FROM sales
		WHERE appointment_id = ANY($1)
		ORDER BY id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saleIDs []int64
	owner := make(map[int64]int)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		i := index[*s.AppointmentID]
		owner[s.ID] = i
		saleIDs = append(saleIDs, s.ID)
		appts[i].Sales = append(appts[i].Sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(saleIDs) == 0 {
		return appts, nil
	}

	payments, err := paymentsForSales(ctx, r.DB.Pool, saleIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		sales := appts[owner[p.SaleID]].Sales
		for j := range sales {
			if sales[j].ID == p.SaleID {
				sales[j].Payments = append(sales[j].Payments, p)
				break
			}
		}
	}
	return appts, nil
}

// ExpensesOn returns the expenses recorded for date.
func (r ReportRepository) ExpensesOn(ctx context.Context, date time.Time) ([]domain.Expense, error) {
	return ExpenseRepository{DB: r.DB}.On(ctx, date)
}
