package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/ports"
	"salonpos-backend/internal/repository"
)

type ExpenseHandler struct {
	Repo     repository.ExpenseRepository
	Clock    ports.Clock
	Location *time.Location
}

func (h ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/expenses", h.list)
	r.Get("/expenses/export", h.export)
	r.Post("/expenses", h.create)
	r.Delete("/expenses/{id}", h.delete)
}

// dateRange reads startDate/endDate; either may be absent.
func dateRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return from, to, false
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return from, to, false
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return from, to, false
	}
	if startDate != nil {
		from = *startDate
	}
	if endDate != nil {
		to = *endDate
	}
	return from, to, true
}

func (h ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	items, err := h.Repo.List(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ExpenseHandler) export(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	items, err := h.Repo.List(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	filename := "expenses_" + h.Clock.Now().Format("20060102_150405")
	if !from.IsZero() && !to.IsZero() {
		filename = fmt.Sprintf("expenses_%s_%s", from.Format("20060102"), to.Format("20060102"))
	}
	t := table{
		Sheet:  "Expenses",
		Header: []string{"ID", "Date", "Description", "Category", "Payment Method", "Amount"},
	}
	for _, e := range items {
		t.Rows = append(t.Rows, []any{e.ID, e.Date.Format(dateLayout), e.Description, e.Category, e.PaymentMethod, e.Amount.StringFixed(2)})
	}
	writeTable(w, t, r.URL.Query().Get("format"), filename)
}

func (h ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date := h.today()
	if req.Date != "" {
		date, _ = parseDate(req.Date)
	}
	e, err := h.Repo.Create(r.Context(), repository.CreateExpenseInput{
		Date:          date,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Category:      strings.TrimSpace(req.Category),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(*e))
}

func (h ExpenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h ExpenseHandler) today() time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	now := h.Clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toExpenseResponse(e domain.Expense) map[string]any {
	return map[string]any{
		"id":            e.ID,
		"date":          e.Date.Format(dateLayout),
		"description":   e.Description,
		"amount":        e.Amount,
		"category":      e.Category,
		"paymentMethod": e.PaymentMethod,
	}
}
