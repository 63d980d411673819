package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type AppointmentStore interface {
	ListByDate(ctx context.Context, date time.Time, professionalID *int64) ([]domain.Appointment, error)
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
	Bookings(ctx context.Context, date time.Time, professionalID *int64) ([]availability.Booking, error)
	Create(ctx context.Context, in repository.CreateAppointmentInput, check func([]availability.Booking) error) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

type TreatmentLookup interface {
	Get(ctx context.Context, id int64) (*domain.Treatment, error)
}

type ScheduleSource interface {
	Schedule(ctx context.Context) (Schedule, error)
}

// BookingService answers availability queries and books appointments.
type BookingService struct {
	Appointments AppointmentStore
	Treatments   TreatmentLookup
	Settings     ScheduleSource
	Logger       *slog.Logger
}

type AvailabilityQuery struct {
	Date           time.Time
	TreatmentID    *int64
	Duration       time.Duration
	ProfessionalID *int64
}

type BookInput struct {
	Date           time.Time
	Time           string
	ClientID       *int64
	ProfessionalID *int64
	TreatmentID    int64
	Price          *decimal.Decimal
	Deposit        decimal.Decimal
	Notes          string
}

// Availability returns the free slot starts for the query. The duration comes
// from the treatment when TreatmentID is set.
func (s BookingService) Availability(ctx context.Context, q AvailabilityQuery) ([]availability.TimeOfDay, error) {
	duration := q.Duration
	if q.TreatmentID != nil {
		t, err := s.Treatments.Get(ctx, *q.TreatmentID)
		if err != nil {
			return nil, upstream(err)
		}
		duration = time.Duration(t.DurationMinutes) * time.Minute
	}
	sched, err := s.Settings.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.Appointments.Bookings(ctx, q.Date, q.ProfessionalID)
	if err != nil {
		return nil, upstream(err)
	}
	return availability.ComputeAvailableSlots(availability.Request{
		Date:            q.Date,
		ServiceDuration: duration,
		WorkdayStart:    sched.WorkdayStart,
		WorkdayEnd:      sched.WorkdayEnd,
		Granularity:     sched.Granularity,
		ClipToWorkday:   sched.ClipToWorkday,
	}, existing)
}

// Book creates a pending appointment. The end time follows from the treatment
// duration and the insert is rejected with domain.ErrConflict when it overlaps
// a pending or confirmed appointment of the same professional.
func (s BookingService) Book(ctx context.Context, in BookInput) (*domain.Appointment, error) {
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	start, err := availability.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}
	t, err := s.Treatments.Get(ctx, in.TreatmentID)
	if err != nil {
		return nil, upstream(err)
	}
	end := start.Add(time.Duration(t.DurationMinutes) * time.Minute)
	if end > 24*60 {
		return nil, fmt.Errorf("%w: appointment must end before midnight", domain.ErrInvalidInput)
	}
	price := t.Price
	if in.Price != nil {
		price = *in.Price
	}

	appt, err := s.Appointments.Create(ctx, repository.CreateAppointmentInput{
		Date:           in.Date,
		StartTime:      start.String(),
		EndTime:        end.String(),
		ClientID:       in.ClientID,
		ProfessionalID: in.ProfessionalID,
		TreatmentID:    &t.ID,
		Price:          price,
		Deposit:        in.Deposit,
		Notes:          in.Notes,
	}, func(existing []availability.Booking) error {
		if availability.Conflicts(start, end, existing) {
			return fmt.Errorf("%w: %s-%s overlaps another appointment", domain.ErrConflict, start, end)
		}
		return nil
	})
	if err != nil {
		return nil, upstream(err)
	}
	if s.Logger != nil {
		s.Logger.Info("appointment booked", "id", appt.ID, "date", in.Date.Format("2006-01-02"), "start", appt.StartTime, "end", appt.EndTime)
	}
	return appt, nil
}

func (s BookingService) List(ctx context.Context, date time.Time, professionalID *int64) ([]domain.Appointment, error) {
	items, err := s.Appointments.ListByDate(ctx, date, professionalID)
	return items, upstream(err)
}

func (s BookingService) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.Appointments.Get(ctx, id)
	return a, upstream(err)
}

func (s BookingService) SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if err := s.Appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, upstream(err)
	}
	return s.Get(ctx, id)
}

func (s BookingService) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrInvalidInput, status)
	}
	if err := s.Appointments.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, upstream(err)
	}
	return s.Get(ctx, id)
}
