package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/domain"
)

var reportDate = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func payment(method string, amount int64) domain.Payment {
	return domain.Payment{PaymentMethod: domain.PaymentMethod{Name: method}, Amount: dec(amount)}
}

func sampleAppointments() []domain.Appointment {
	return []domain.Appointment{
		{
			ID:           1,
			StartTime:    "10:00",
			Price:        dec(8000),
			Deposit:      dec(1000),
			Client:       &domain.PartyRef{ID: 7, Name: "Ana"},
			Professional: &domain.PartyRef{ID: 3, Name: "Lucía"},
			Treatment:    &domain.PartyRef{ID: 2, Name: "Masaje"},
			Sales: []domain.Sale{
				{Payments: []domain.Payment{payment("Tarjeta", 3000)}},
				{Payments: []domain.Payment{payment("Efectivo", 5000)}},
			},
		},
		{
			ID:        2,
			StartTime: "12:30",
			Price:     dec(2000),
			Deposit:   decimal.Zero,
			Sales: []domain.Sale{
				{Payments: []domain.Payment{payment("Efectivo", 2000)}},
			},
		},
		{
			ID:        3,
			StartTime: "15:00",
			Price:     dec(4500),
			Deposit:   decimal.Zero,
		},
	}
}

func TestBuildDailyReport_AppointmentSummaries(t *testing.T) {
	rep := BuildDailyReport(reportDate, sampleAppointments(), nil, Options{CommissionPercentage: DefaultCommissionPercentage})

	if rep.Date != "2026-05-04" {
		t.Fatalf("unexpected date %q", rep.Date)
	}
	if len(rep.Appointments) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(rep.Appointments))
	}

	first := rep.Appointments[0]
	if first.PaymentMethod != "Efectivo" {
		t.Errorf("expected dominant method Efectivo, got %q", first.PaymentMethod)
	}
	if !first.TotalPaid.Equal(dec(8000)) {
		t.Errorf("expected total paid 8000, got %s", first.TotalPaid)
	}
	if !first.CommissionAmount.Equal(dec(800)) {
		t.Errorf("expected commission 800, got %s", first.CommissionAmount)
	}
	if first.ClientName != "Ana" || first.ProfessionalName != "Lucía" || first.TreatmentName != "Masaje" {
		t.Errorf("unexpected names: %+v", first)
	}

	second := rep.Appointments[1]
	if second.ClientName != UnknownClient || second.TreatmentName != UnknownTreatment || second.ProfessionalName != UnknownProfessional {
		t.Errorf("expected placeholders, got %+v", second)
	}

	third := rep.Appointments[2]
	if third.PaymentMethod != UnknownPaymentMethod {
		t.Errorf("expected %q without payments, got %q", UnknownPaymentMethod, third.PaymentMethod)
	}
	if !third.TotalPaid.IsZero() {
		t.Errorf("expected zero paid, got %s", third.TotalPaid)
	}
}

func TestBuildDailyReport_DominantTieKeepsFirst(t *testing.T) {
	appts := []domain.Appointment{{
		ID:    9,
		Price: dec(1000),
		Sales: []domain.Sale{
			{Payments: []domain.Payment{payment("Transferencia", 500), payment("Efectivo", 500)}},
		},
	}}
	rep := BuildDailyReport(reportDate, appts, nil, Options{CommissionPercentage: DefaultCommissionPercentage})
	if got := rep.Appointments[0].PaymentMethod; got != "Transferencia" {
		t.Fatalf("expected first-seen method on tie, got %q", got)
	}
}

func TestBuildDailyReport_PaymentTotalsMatchPayments(t *testing.T) {
	appts := sampleAppointments()
	rep := BuildDailyReport(reportDate, appts, nil, Options{CommissionPercentage: DefaultCommissionPercentage})

	want := map[string]int64{"Tarjeta": 3000, "Efectivo": 7000}
	if len(rep.PaymentSummary) != len(want) {
		t.Fatalf("expected %d methods, got %+v", len(want), rep.PaymentSummary)
	}
	if rep.PaymentSummary[0].Method != "Tarjeta" || rep.PaymentSummary[1].Method != "Efectivo" {
		t.Errorf("expected first-seen order, got %+v", rep.PaymentSummary)
	}

	summed := decimal.Zero
	for _, pm := range rep.PaymentSummary {
		if !pm.Total.Equal(dec(want[pm.Method])) {
			t.Errorf("method %s: expected %d, got %s", pm.Method, want[pm.Method], pm.Total)
		}
		summed = summed.Add(pm.Total)
	}

	all := decimal.Zero
	for _, a := range appts {
		for _, s := range a.Sales {
			for _, p := range s.Payments {
				all = all.Add(p.Amount)
			}
		}
	}
	if !summed.Equal(all) {
		t.Fatalf("payment summary %s does not match payments %s", summed, all)
	}
}

func TestBuildDailyReport_ExpensesAndTotals(t *testing.T) {
	expenses := []domain.Expense{
		{Description: "Toallas", Amount: dec(1200), Category: "insumos", PaymentMethod: "Efectivo"},
		{Description: "Luz", Amount: dec(800), Category: "servicios"},
	}
	rep := BuildDailyReport(reportDate, sampleAppointments(), expenses, Options{CommissionPercentage: DefaultCommissionPercentage})

	if len(rep.ExpenseSummary) != 2 {
		t.Fatalf("expected 2 expense rows, got %d", len(rep.ExpenseSummary))
	}
	if rep.ExpenseSummary[1].PaymentMethod != UnknownPaymentMethod {
		t.Errorf("expected placeholder payment method, got %q", rep.ExpenseSummary[1].PaymentMethod)
	}

	s := rep.Summary
	if s.TotalAppointments != 3 {
		t.Errorf("expected 3 appointments, got %d", s.TotalAppointments)
	}
	if !s.TotalRevenue.Equal(dec(14500)) {
		t.Errorf("expected revenue 14500, got %s", s.TotalRevenue)
	}
	if !s.TotalExpenses.Equal(dec(2000)) {
		t.Errorf("expected expenses 2000, got %s", s.TotalExpenses)
	}
	if !s.NetIncome.Equal(s.TotalRevenue.Sub(s.TotalExpenses)) {
		t.Errorf("net income %s != revenue - expenses", s.NetIncome)
	}
}

func TestBuildDailyReport_Empty(t *testing.T) {
	rep := BuildDailyReport(reportDate, nil, nil, Options{CommissionPercentage: DefaultCommissionPercentage})
	if rep.Summary.TotalAppointments != 0 {
		t.Fatalf("expected no appointments")
	}
	if !rep.Summary.NetIncome.IsZero() {
		t.Fatalf("expected zero net income, got %s", rep.Summary.NetIncome)
	}
	if rep.Appointments == nil || rep.PaymentSummary == nil || rep.ExpenseSummary == nil {
		t.Fatal("expected empty slices, not nil, so JSON renders []")
	}
}

func TestCommission(t *testing.T) {
	tests := []struct {
		price string
		pct   string
		want  string
	}{
		{"8000", "10", "800"},
		{"1234.50", "10", "123.45"},
		{"5000", "12.5", "625"},
		{"0", "10", "0"},
	}
	for _, tt := range tests {
		got := Commission(decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.pct))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Commission(%s, %s) = %s, want %s", tt.price, tt.pct, got, tt.want)
		}
	}
}
