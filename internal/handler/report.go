package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/report"
)

// DailyReporter produces the aggregated report of one day.
type DailyReporter interface {
	Daily(ctx context.Context, date time.Time) (report.DailyReport, error)
}

type ReportHandler struct {
	Service DailyReporter
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/daily", h.daily)
	r.Get("/reports/daily/export", h.export)
}

func (h ReportHandler) daily(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r, "date")
	if !ok {
		return
	}
	rep, err := h.Service.Daily(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) export(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r, "date")
	if !ok {
		return
	}
	rep, err := h.Service.Daily(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeTable(w, dailyReportTable(rep), r.URL.Query().Get("format"), "daily_report_"+date.Format("20060102"))
}

// dailyReportTable flattens the report into one appointment row each,
// followed by the expense rows and the summary.
func dailyReportTable(rep report.DailyReport) table {
	t := table{
		Sheet: "Reporte",
		Header: []string{"Tipo", "Hora", "Cliente", "Tratamiento", "Profesional", "Medio de pago",
			"Precio", "Seña", "Pagado", "Comisión %", "Comisión"},
	}
	for _, a := range rep.Appointments {
		t.Rows = append(t.Rows, []any{"Turno", a.Time, a.ClientName, a.TreatmentName, a.ProfessionalName, a.PaymentMethod,
			a.Price.StringFixed(2), a.Deposit.StringFixed(2), a.TotalPaid.StringFixed(2),
			a.CommissionPercentage.String(), a.CommissionAmount.StringFixed(2)})
	}
	for _, e := range rep.ExpenseSummary {
		t.Rows = append(t.Rows, []any{"Gasto", "", e.Description, "", "", e.PaymentMethod,
			e.Amount.Neg().StringFixed(2), "", "", "", ""})
	}
	for _, p := range rep.PaymentSummary {
		t.Rows = append(t.Rows, []any{"Total medio de pago", "", "", "", "", p.Method,
			p.Total.StringFixed(2), "", "", "", ""})
	}
	s := rep.Summary
	t.Rows = append(t.Rows,
		[]any{"Turnos", "", s.TotalAppointments, "", "", "", "", "", "", "", ""},
		[]any{"Ingresos", "", "", "", "", "", s.TotalRevenue.StringFixed(2), "", "", "", ""},
		[]any{"Gastos", "", "", "", "", "", s.TotalExpenses.StringFixed(2), "", "", "", ""},
		[]any{"Neto", "", "", "", "", "", s.NetIncome.StringFixed(2), "", "", "", ""},
	)
	return t
}
