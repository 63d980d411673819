package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

const dateLayout = "2006-01-02"

type AppointmentRepository struct {
	DB *db.Postgres
}

type CreateAppointmentInput struct {
	Date           time.Time
	StartTime      string
	EndTime        string
	ClientID       *int64
	ProfessionalID *int64
	TreatmentID    *int64
	Price          decimal.Decimal
	Deposit        decimal.Decimal
	Notes          string
}

const appointmentSelect = `
	SELECT a.id, a.appointment_date, a.start_time, a.end_time,
	       a.client_id, c.name, a.professional_id, p.name, a.treatment_id, t.name,
	       a.price, a.deposit, a.status, a.payment_status, a.notes, a.created_at, a.updated_at
	FROM appointments a
	LEFT JOIN clients c ON c.id = a.client_id
	LEFT JOIN professionals p ON p.id = a.professional_id
	LEFT JOIN treatments t ON t.id = a.treatment_id
`

func scanAppointment(row interface {
	Scan(dest ...any) error
}) (*domain.Appointment, error) {
	var (
		a                                           domain.Appointment
		clientID, professionalID, treatmentID       pgtype.Int8
		clientName, professionalName, treatmentName pgtype.Text
		status, paymentStatus                       string
	)
	if err := row.Scan(
		&a.ID, &a.Date, &a.StartTime, &a.EndTime,
		&clientID, &clientName, &professionalID, &professionalName, &treatmentID, &treatmentName,
		&a.Price, &a.Deposit, &status, &paymentStatus, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentStatus(status)
	a.PaymentStatus = domain.PaymentStatus(paymentStatus)
	a.ClientID, a.Client = partyRef(clientID, clientName)
	a.ProfessionalID, a.Professional = partyRef(professionalID, professionalName)
	a.TreatmentID, a.Treatment = partyRef(treatmentID, treatmentName)
	return &a, nil
}

func partyRef(id pgtype.Int8, name pgtype.Text) (*int64, *domain.PartyRef) {
	if !id.Valid {
		return nil, nil
	}
	v := id.Int64
	ref := &domain.PartyRef{ID: v}
	if name.Valid {
		ref.Name = name.String
	}
	return &v, ref
}

// ListByDate returns the appointments of one day ordered by start time.
// professionalID narrows the list when set.
func (r AppointmentRepository) ListByDate(ctx context.Context, date time.Time, professionalID *int64) ([]domain.Appointment, error) {
	rows, err := r.DB.Pool.Query(ctx, appointmentSelect+`
		WHERE a.appointment_date = $1::date
		  AND ($2::bigint IS NULL OR a.professional_id = $2)
		ORDER BY a.start_time ASC, a.id ASC
	`, date.Format(dateLayout), professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r AppointmentRepository) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	row := r.DB.Pool.QueryRow(ctx, appointmentSelect+`WHERE a.id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Bookings returns the intervals already taken on date. Cancelled
// appointments are included with their status; the calculator skips them.
func (r AppointmentRepository) Bookings(ctx context.Context, date time.Time, professionalID *int64) ([]availability.Booking, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT start_time, end_time, status
		FROM appointments
		WHERE appointment_date = $1::date
		  AND ($2::bigint IS NULL OR professional_id = $2)
		ORDER BY start_time ASC
	`, date.Format(dateLayout), professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]availability.Booking, error) {
	var out []availability.Booking
	for rows.Next() {
		var start, end, status string
		if err := rows.Scan(&start, &end, &status); err != nil {
			return nil, err
		}
		b, err := toBooking(start, end, status)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func toBooking(start, end, status string) (availability.Booking, error) {
	s, err := availability.ParseTimeOfDay(start)
	if err != nil {
		return availability.Booking{}, fmt.Errorf("stored start time: %w", err)
	}
	e, err := availability.ParseTimeOfDay(end)
	if err != nil {
		return availability.Booking{}, fmt.Errorf("stored end time: %w", err)
	}
	return availability.Booking{Start: s, End: e, Status: domain.AppointmentStatus(status)}, nil
}

// Create inserts an appointment. check receives the bookings of the same day
// (and professional, when set) while an advisory lock serialises concurrent
// bookings of that scope; a non-nil error aborts the insert.
func (r AppointmentRepository) Create(ctx context.Context, in CreateAppointmentInput, check func([]availability.Booking) error) (*domain.Appointment, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	day := in.Date.Format(dateLayout)
	lockKey := "appointments:" + day
	if in.ProfessionalID != nil {
		lockKey = fmt.Sprintf("%s:%d", lockKey, *in.ProfessionalID)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return nil, err
	}

	if check != nil {
		rows, err := tx.Query(ctx, `
			SELECT start_time, end_time, status
			FROM appointments
			WHERE appointment_date = $1::date
			  AND ($2::bigint IS NULL OR professional_id = $2)
		`, day, in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		existing, err := scanBookings(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		if err := check(existing); err != nil {
			return nil, err
		}
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments
		(appointment_date, start_time, end_time, client_id, professional_id, treatment_id, price, deposit, status, payment_status, notes, created_at, updated_at)
		VALUES ($1::date,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, now(), now())
		RETURNING id
	`, day, in.StartTime, in.EndTime, in.ClientID, in.ProfessionalID, in.TreatmentID, in.Price, in.Deposit,
		string(domain.AppointmentPending), string(domain.PaymentPending), in.Notes).Scan(&id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: referenced client, professional or treatment", ErrNotFound)
		}
		return nil, err
	}

	a, err := scanAppointment(tx.QueryRow(ctx, appointmentSelect+`WHERE a.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (r AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE appointments SET status=$2, updated_at=now() WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r AppointmentRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE appointments SET payment_status=$2, updated_at=now() WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
