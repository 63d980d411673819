package service

import (
	"context"
	"fmt"
	"time"

	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/report"
)

type ReportSource interface {
	AppointmentsOn(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	ExpensesOn(ctx context.Context, date time.Time) ([]domain.Expense, error)
}

type ReportService struct {
	Source   ReportSource
	Settings ScheduleSource
}

// Daily loads one day of appointments and expenses and aggregates them.
// Any failure to load is reported as domain.ErrUpstreamUnavailable.
func (s ReportService) Daily(ctx context.Context, date time.Time) (report.DailyReport, error) {
	if date.IsZero() {
		return report.DailyReport{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	sched, err := s.Settings.Schedule(ctx)
	if err != nil {
		return report.DailyReport{}, unavailable(err)
	}
	appts, err := s.Source.AppointmentsOn(ctx, date)
	if err != nil {
		return report.DailyReport{}, unavailable(err)
	}
	expenses, err := s.Source.ExpensesOn(ctx, date)
	if err != nil {
		return report.DailyReport{}, unavailable(err)
	}
	return report.BuildDailyReport(date, appts, expenses, report.Options{
		CommissionPercentage: sched.CommissionPercentage,
	}), nil
}

func unavailable(err error) error {
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
