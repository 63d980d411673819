package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/service"
)

// Scheduler is the booking surface the appointment routes need.
type Scheduler interface {
	Availability(ctx context.Context, q service.AvailabilityQuery) ([]availability.TimeOfDay, error)
	Book(ctx context.Context, in service.BookInput) (*domain.Appointment, error)
	List(ctx context.Context, date time.Time, professionalID *int64) ([]domain.Appointment, error)
	SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
	SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Appointment, error)
}

type AppointmentHandler struct {
	Service Scheduler
}

func (h AppointmentHandler) RegisterViewRoutes(r chi.Router) {
	r.Get("/appointments", h.list)
	r.Get("/appointments/availability", h.availability)
}

func (h AppointmentHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/appointments", h.create)
	r.Put("/appointments/{id}/status", h.setStatus)
	r.Put("/appointments/{id}/payment-status", h.setPaymentStatus)
}

func (h AppointmentHandler) list(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r, "date")
	if !ok {
		return
	}
	profID, ok := optionalIDQuery(w, r, "professionalId")
	if !ok {
		return
	}
	items, err := h.Service.List(r.Context(), date, profID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, toAppointmentResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AppointmentHandler) availability(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r, "date")
	if !ok {
		return
	}
	q := service.AvailabilityQuery{Date: date}
	if q.TreatmentID, ok = optionalIDQuery(w, r, "treatmentId"); !ok {
		return
	}
	if q.ProfessionalID, ok = optionalIDQuery(w, r, "professionalId"); !ok {
		return
	}
	if q.TreatmentID == nil {
		mins, err := strconv.Atoi(r.URL.Query().Get("duration"))
		if err != nil || mins <= 0 {
			writeError(w, http.StatusBadRequest, "treatmentId or a positive duration in minutes is required")
			return
		}
		q.Duration = time.Duration(mins) * time.Minute
	}

	slots, err := h.Service.Availability(r.Context(), q)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability.FormatSlots(slots))
}

func (h AppointmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, _ := parseDate(req.Date)
	in := service.BookInput{
		Date:           date,
		Time:           req.Time,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		TreatmentID:    *req.TreatmentID,
		Price:          req.Price,
		Deposit:        decimal.Zero,
		Notes:          req.Notes,
	}
	if req.Deposit != nil {
		in.Deposit = *req.Deposit
	}
	appt, err := h.Service.Book(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAppointmentResponse(*appt))
}

func (h AppointmentHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	appt, err := h.Service.SetStatus(r.Context(), id, domain.AppointmentStatus(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
}

func (h AppointmentHandler) setPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	appt, err := h.Service.SetPaymentStatus(r.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
}

func optionalIDQuery(w http.ResponseWriter, r *http.Request, key string) (*int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+key)
		return nil, false
	}
	return &id, true
}

func toAppointmentResponse(a domain.Appointment) map[string]any {
	return map[string]any{
		"id":            a.ID,
		"date":          a.Date.Format(dateLayout),
		"startTime":     a.StartTime,
		"endTime":       a.EndTime,
		"client":        toRef(a.Client),
		"professional":  toRef(a.Professional),
		"treatment":     toRef(a.Treatment),
		"price":         a.Price,
		"deposit":       a.Deposit,
		"status":        string(a.Status),
		"paymentStatus": string(a.PaymentStatus),
		"notes":         a.Notes,
	}
}

func toRef(ref *domain.PartyRef) any {
	if ref == nil {
		return nil
	}
	return map[string]any{"id": ref.ID, "name": ref.Name}
}
