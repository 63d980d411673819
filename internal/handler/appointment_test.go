package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/service"
)

type fakeScheduler struct {
	query  service.AvailabilityQuery
	booked *service.BookInput
	err    error
}

func (f *fakeScheduler) Availability(_ context.Context, q service.AvailabilityQuery) ([]availability.TimeOfDay, error) {
	f.query = q
	if f.err != nil {
		return nil, f.err
	}
	return []availability.TimeOfDay{9 * 60, 9*60 + 30}, nil
}

func (f *fakeScheduler) Book(_ context.Context, in service.BookInput) (*domain.Appointment, error) {
	f.booked = &in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: 10, Date: in.Date, StartTime: in.Time, EndTime: "11:00", Status: domain.AppointmentPending, PaymentStatus: domain.PaymentPending}, nil
}

func (f *fakeScheduler) List(context.Context, time.Time, *int64) ([]domain.Appointment, error) {
	return nil, f.err
}

func (f *fakeScheduler) SetStatus(_ context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id, Status: status}, nil
}

func (f *fakeScheduler) SetPaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id, PaymentStatus: status}, nil
}

func newAppointmentRouter(svc Scheduler) http.Handler {
	r := chi.NewRouter()
	h := AppointmentHandler{Service: svc}
	h.RegisterViewRoutes(r)
	h.RegisterManageRoutes(r)
	return r
}

func TestAvailabilityEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     int
		duration time.Duration
	}{
		{"missing date", "?duration=30", http.StatusBadRequest, 0},
		{"bad date", "?date=2024/03/15&duration=30", http.StatusBadRequest, 0},
		{"no duration nor treatment", "?date=2024-03-15", http.StatusBadRequest, 0},
		{"zero duration", "?date=2024-03-15&duration=0", http.StatusBadRequest, 0},
		{"bad treatment id", "?date=2024-03-15&treatmentId=x", http.StatusBadRequest, 0},
		{"duration", "?date=2024-03-15&duration=45", http.StatusOK, 45 * time.Minute},
		{"treatment", "?date=2024-03-15&treatmentId=3", http.StatusOK, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduler{}
			rec := httptest.NewRecorder()
			newAppointmentRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/availability"+tt.query, nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}
			if svc.query.Duration != tt.duration {
				t.Errorf("duration = %s, want %s", svc.query.Duration, tt.duration)
			}
			var body struct {
				Data []string `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if strings.Join(body.Data, ",") != "09:00,09:30" {
				t.Errorf("slots = %v", body.Data)
			}
		})
	}
}

func TestAvailabilityUnknownTreatment(t *testing.T) {
	svc := &fakeScheduler{err: domain.ErrNotFound}
	rec := httptest.NewRecorder()
	newAppointmentRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/availability?date=2024-03-15&treatmentId=99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateAppointment(t *testing.T) {
	svc := &fakeScheduler{}
	body := `{"clientId":1,"professionalId":2,"treatmentId":3,"date":"2024-03-15","time":"10:00","deposit":"500"}`
	rec := httptest.NewRecorder()
	newAppointmentRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.booked == nil || svc.booked.TreatmentID != 3 || svc.booked.Time != "10:00" {
		t.Fatalf("booked = %+v", svc.booked)
	}
	if !svc.booked.Deposit.Equal(decimal.NewFromInt(500)) {
		t.Errorf("deposit = %s", svc.booked.Deposit)
	}
	if svc.booked.Price != nil {
		t.Errorf("price must default to the treatment price")
	}
}

func TestCreateAppointmentRejectsBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"no treatment", `{"professionalId":2,"date":"2024-03-15","time":"10:00"}`},
		{"bad time", `{"professionalId":2,"treatmentId":3,"date":"2024-03-15","time":"10h"}`},
		{"negative price", `{"professionalId":2,"treatmentId":3,"date":"2024-03-15","time":"10:00","price":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduler{}
			rec := httptest.NewRecorder()
			newAppointmentRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if svc.booked != nil {
				t.Fatal("service must not be called")
			}
		})
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	svc := &fakeScheduler{err: domain.ErrConflict}
	body := `{"professionalId":2,"treatmentId":3,"date":"2024-03-15","time":"10:00"}`
	rec := httptest.NewRecorder()
	newAppointmentRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestSetStatusEndpoint(t *testing.T) {
	svc := &fakeScheduler{}
	router := newAppointmentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/appointments/4/status", strings.NewReader(`{"status":"cancelled"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/appointments/4/status", strings.NewReader(`{"status":"done"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/appointments/abc/payment-status", strings.NewReader(`{"paymentStatus":"paid"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
