package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type fakeAppointments struct {
	items  []domain.Appointment
	err    error
	nextID int64
}

func (f *fakeAppointments) ListByDate(_ context.Context, date time.Time, professionalID *int64) ([]domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Appointment
	for _, a := range f.items {
		if !a.Date.Equal(date) {
			continue
		}
		if professionalID != nil && (a.ProfessionalID == nil || *a.ProfessionalID != *professionalID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointments) Get(_ context.Context, id int64) (*domain.Appointment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointments) Bookings(ctx context.Context, date time.Time, professionalID *int64) ([]availability.Booking, error) {
	appts, err := f.ListByDate(ctx, date, professionalID)
	if err != nil {
		return nil, err
	}
	var out []availability.Booking
	for _, a := range appts {
		start, _ := availability.ParseTimeOfDay(a.StartTime)
		end, _ := availability.ParseTimeOfDay(a.EndTime)
		out = append(out, availability.Booking{Start: start, End: end, Status: a.Status})
	}
	return out, nil
}

func (f *fakeAppointments) Create(ctx context.Context, in repository.CreateAppointmentInput, check func([]availability.Booking) error) (*domain.Appointment, error) {
	existing, err := f.Bookings(ctx, in.Date, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(existing); err != nil {
			return nil, err
		}
	}
	f.nextID++
	a := domain.Appointment{
		ID:             f.nextID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		ClientID:       in.ClientID,
		ProfessionalID: in.ProfessionalID,
		TreatmentID:    in.TreatmentID,
		Price:          in.Price,
		Deposit:        in.Deposit,
		Status:         domain.AppointmentPending,
		PaymentStatus:  domain.PaymentPending,
		Notes:          in.Notes,
	}
	f.items = append(f.items, a)
	return &a, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAppointments) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].PaymentStatus = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTreatments map[int64]domain.Treatment

func (f fakeTreatments) Get(_ context.Context, id int64) (*domain.Treatment, error) {
	t, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

type fixedSchedule struct {
	sched Schedule
	err   error
}

func (f fixedSchedule) Schedule(context.Context) (Schedule, error) {
	return f.sched, f.err
}

func defaultSchedule() Schedule {
	return Schedule{
		WorkdayStart:         availability.DefaultWorkdayStart,
		WorkdayEnd:           availability.DefaultWorkdayEnd,
		Granularity:          availability.DefaultGranularity,
		CommissionPercentage: decimal.NewFromInt(10),
		CurrencyCode:         "ARS",
	}
}

type fakeSettings struct {
	stored  *domain.Settings
	err     error
	logo    []byte
	logoCT  string
	saved   *domain.Settings
	cleared bool
}

func (f *fakeSettings) Get(context.Context) (*domain.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.stored == nil {
		return nil, repository.ErrNotFound
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeSettings) Save(_ context.Context, s domain.Settings) (*domain.Settings, error) {
	f.saved = &s
	return &s, nil
}

func (f *fakeSettings) Logo(context.Context) ([]byte, string, error) {
	if f.logo == nil {
		return nil, "", repository.ErrNotFound
	}
	return f.logo, f.logoCT, nil
}

func (f *fakeSettings) SetLogo(_ context.Context, data []byte, mime string) error {
	f.logo, f.logoCT = data, mime
	return nil
}

func (f *fakeSettings) ClearLogo(context.Context) error {
	f.logo, f.cleared = nil, true
	return nil
}

var errBoom = errors.New("boom")
