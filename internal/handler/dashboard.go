package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/ports"
	"salonpos-backend/internal/repository"
)

type DashboardHandler struct {
	Repo     repository.DashboardRepository
	Clock    ports.Clock
	Location *time.Location
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.summary)
	r.Get("/dashboard/top-treatments", h.topTreatments)
	r.Get("/dashboard/top-professionals", h.topProfessionals)
	r.Get("/dashboard/revenue", h.revenue)
}

func (h DashboardHandler) today() time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	return h.Clock.Now().In(loc)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	data, err := h.Repo.Summary(r.Context(), h.today())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalRevenue":      data.TotalRevenue,
		"totalSales":        data.TotalSales,
		"todayRevenue":      data.TodayRevenue,
		"todayAppointments": data.TodayAppointments,
		"pendingPayments":   data.PendingPayments,
	})
}

func limitParam(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n <= 50 {
		return n
	}
	return 5
}

func (h DashboardHandler) topTreatments(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.TopTreatments(r.Context(), limitParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardItems(items))
}

func (h DashboardHandler) topProfessionals(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.TopProfessionals(r.Context(), limitParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardItems(items))
}

func (h DashboardHandler) revenue(w http.ResponseWriter, r *http.Request) {
	days := 30
	switch strings.ToLower(r.URL.Query().Get("range")) {
	case "1d", "today", "hoy":
		days = 1
	case "7d", "week", "semana":
		days = 7
	}
	points, err := h.Repo.RevenueSeries(r.Context(), h.today(), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(points))
	for _, p := range points {
		resp = append(resp, map[string]any{
			"label": p.Label,
			"value": p.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toDashboardItems(items []repository.DashboardItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			"name":   it.Name,
			"amount": it.Amount,
			"count":  it.Count,
		})
	}
	return out
}
