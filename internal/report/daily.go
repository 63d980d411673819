package report

import (
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/domain"
)

// Placeholders used when a related record is missing.
const (
	UnknownClient        = "Cliente no especificado"
	UnknownTreatment     = "Tratamiento no especificado"
	UnknownProfessional  = "Profesional no especificado"
	UnknownPaymentMethod = "No especificado"
)

// DefaultCommissionPercentage applies when no setting overrides it.
var DefaultCommissionPercentage = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

type Options struct {
	CommissionPercentage decimal.Decimal
}

type AppointmentSummary struct {
	ID                   int64           `json:"id"`
	ClientName           string          `json:"clientName"`
	TreatmentName        string          `json:"treatmentName"`
	ProfessionalName     string          `json:"professionalName"`
	Time                 string          `json:"time"`
	Price                decimal.Decimal `json:"price"`
	PaymentMethod        string          `json:"paymentMethod"`
	Deposit              decimal.Decimal `json:"deposit"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionAmount     decimal.Decimal `json:"commissionAmount"`
}

type PaymentMethodTotal struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

type ExpenseSummary struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type Totals struct {
	TotalAppointments int             `json:"totalAppointments"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
}

type DailyReport struct {
	Date           string               `json:"date"`
	Appointments   []AppointmentSummary `json:"appointments"`
	PaymentSummary []PaymentMethodTotal `json:"paymentSummary"`
	ExpenseSummary []ExpenseSummary     `json:"expenseSummary"`
	Summary        Totals               `json:"summary"`
}

// BuildDailyReport aggregates one day of appointments, their sales and
// payments, and that day's expenses. It performs no I/O.
func BuildDailyReport(date time.Time, appointments []domain.Appointment, expenses []domain.Expense, opts Options) DailyReport {
	pct := opts.CommissionPercentage

	rep := DailyReport{
		Date:           date.Format("2006-01-02"),
		Appointments:   make([]AppointmentSummary, 0, len(appointments)),
		PaymentSummary: make([]PaymentMethodTotal, 0),
		ExpenseSummary: make([]ExpenseSummary, 0, len(expenses)),
		Summary: Totals{
			TotalRevenue:  decimal.Zero,
			TotalExpenses: decimal.Zero,
		},
	}

	methodIndex := make(map[string]int)
	for _, a := range appointments {
		dominant, totalPaid := dominantPayment(a.Sales)
		for _, s := range a.Sales {
			for _, p := range s.Payments {
				name := p.PaymentMethod.Name
				idx, ok := methodIndex[name]
				if !ok {
					idx = len(rep.PaymentSummary)
					methodIndex[name] = idx
					rep.PaymentSummary = append(rep.PaymentSummary, PaymentMethodTotal{Method: name, Total: decimal.Zero})
				}
				rep.PaymentSummary[idx].Total = rep.PaymentSummary[idx].Total.Add(p.Amount)
			}
		}

		method := UnknownPaymentMethod
		if dominant != nil {
			method = dominant.PaymentMethod.Name
		}
		rep.Appointments = append(rep.Appointments, AppointmentSummary{
			ID:                   a.ID,
			ClientName:           nameOr(a.Client, UnknownClient),
			TreatmentName:        nameOr(a.Treatment, UnknownTreatment),
			ProfessionalName:     nameOr(a.Professional, UnknownProfessional),
			Time:                 a.StartTime,
			Price:                a.Price,
			PaymentMethod:        method,
			Deposit:              a.Deposit,
			TotalPaid:            totalPaid,
			CommissionPercentage: pct,
			CommissionAmount:     Commission(a.Price, pct),
		})
		rep.Summary.TotalRevenue = rep.Summary.TotalRevenue.Add(a.Price)
	}
	rep.Summary.TotalAppointments = len(appointments)

	for _, e := range expenses {
		method := e.PaymentMethod
		if method == "" {
			method = UnknownPaymentMethod
		}
		rep.ExpenseSummary = append(rep.ExpenseSummary, ExpenseSummary{
			Description:   e.Description,
			Amount:        e.Amount,
			PaymentMethod: method,
		})
		rep.Summary.TotalExpenses = rep.Summary.TotalExpenses.Add(e.Amount)
	}
	rep.Summary.NetIncome = rep.Summary.TotalRevenue.Sub(rep.Summary.TotalExpenses)
	return rep
}

// Commission returns price * pct / 100.
func Commission(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(pct).Div(hundred)
}

// dominantPayment returns the payment with the strictly largest amount across
// all sales (first one wins on ties) and the sum of every payment.
func dominantPayment(sales []domain.Sale) (*domain.Payment, decimal.Decimal) {
	var best *domain.Payment
	total := decimal.Zero
	for i := range sales {
		for j := range sales[i].Payments {
			p := &sales[i].Payments[j]
			total = total.Add(p.Amount)
			if best == nil || p.Amount.GreaterThan(best.Amount) {
				best = p
			}
		}
	}
	return best, total
}

func nameOr(ref *domain.PartyRef, fallback string) string {
	if ref == nil || ref.Name == "" {
		return fallback
	}
	return ref.Name
}
