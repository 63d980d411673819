package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/db"
)

type DashboardRepository struct {
	DB *db.Postgres
}

type DashboardSummary struct {
	TotalRevenue      decimal.Decimal
	TotalSales        int64
	TodayRevenue      decimal.Decimal
	TodayAppointments int64
	PendingPayments   int64
}

type DashboardItem struct {
	Name   string
	Amount decimal.Decimal
	Count  int64
}

type RevenuePoint struct {
	Label  string
	Amount decimal.Decimal
}

// Summary aggregates revenue from payments and today's schedule. today is the
// business-local date.
func (r DashboardRepository) Summary(ctx context.Context, today time.Time) (DashboardSummary, error) {
	var s DashboardSummary
	day := today.Format(dateLayout)
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(total) FROM sales), 0),
			(SELECT COUNT(*) FROM sales),
			COALESCE((SELECT SUM(price) FROM appointments WHERE appointment_date = $1::date AND status <> 'cancelled'), 0),
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1::date AND status <> 'cancelled'),
			(SELECT COUNT(*) FROM appointments WHERE appointment_date <= $1::date AND status <> 'cancelled' AND payment_status = 'pending')
	`, day).Scan(&s.TotalRevenue, &s.TotalSales, &s.TodayRevenue, &s.TodayAppointments, &s.PendingPayments)
	return s, err
}

func (r DashboardRepository) TopTreatments(ctx context.Context, limit int) ([]DashboardItem, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT t.name, COALESCE(SUM(a.price),0) AS amount, COUNT(*) AS cnt
		FROM appointments a
		JOIN treatments t ON t.id = a.treatment_id
		WHERE a.status <> 'cancelled'
		GROUP BY t.name
		ORDER BY amount DESC, t.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DashboardItem
	for rows.Next() {
		var it DashboardItem
		if err := rows.Scan(&it.Name, &it.Amount, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r DashboardRepository) TopProfessionals(ctx context.Context, limit int) ([]DashboardItem, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT p.name, COALESCE(SUM(a.price),0) AS amount, COUNT(*) AS cnt
		FROM appointments a
		JOIN professionals p ON p.id = a.professional_id
		WHERE a.status <> 'cancelled'
		GROUP BY p.name
		ORDER BY amount DESC, p.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DashboardItem
	for rows.Next() {
		var it DashboardItem
		if err := rows.Scan(&it.Name, &it.Amount, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RevenueSeries returns sale totals per day for the days ending at today.
func (r DashboardRepository) RevenueSeries(ctx context.Context, today time.Time, days int) ([]RevenuePoint, error) {
	start := today.AddDate(0, 0, -days+1).Format(dateLayout)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'), COALESCE(SUM(total),0)
		FROM sales
		WHERE created_at::date >= $1::date
		GROUP BY created_at::date
		ORDER BY created_at::date ASC
	`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var points []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Label, &p.Amount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
