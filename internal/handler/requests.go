package handler

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return invalid("email and password are required")
	}
	return nil
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

func (r googleLoginRequest) Validate() error {
	if r.IDToken == "" {
		return invalid("idToken is required")
	}
	return nil
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r createUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return invalid("email is not valid")
	}
	if !domain.Role(r.Role).Valid() {
		return invalid("role must be admin, receptionist or professional")
	}
	if len(r.Password) < 8 {
		return invalid("password must have at least 8 characters")
	}
	return nil
}

type createAppointmentRequest struct {
	ClientID       *int64           `json:"clientId"`
	ProfessionalID *int64           `json:"professionalId"`
	TreatmentID    *int64           `json:"treatmentId"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Price          *decimal.Decimal `json:"price"`
	Deposit        *decimal.Decimal `json:"deposit"`
	Notes          string           `json:"notes"`
}

func (r createAppointmentRequest) Validate() error {
	if r.TreatmentID == nil || *r.TreatmentID <= 0 {
		return invalid("treatmentId is required")
	}
	if r.ProfessionalID == nil || *r.ProfessionalID <= 0 {
		return invalid("professionalId is required")
	}
	if _, err := parseDate(r.Date); err != nil {
		return err
	}
	if _, err := availability.ParseTimeOfDay(r.Time); err != nil {
		return err
	}
	if r.Price != nil && r.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if r.Deposit != nil && r.Deposit.IsNegative() {
		return invalid("deposit must not be negative")
	}
	return nil
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r statusRequest) Validate() error {
	if !domain.AppointmentStatus(r.Status).Valid() {
		return invalid("status must be pending, confirmed or cancelled")
	}
	return nil
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

func (r paymentStatusRequest) Validate() error {
	if !domain.PaymentStatus(r.PaymentStatus).Valid() {
		return invalid("paymentStatus must be pending or paid")
	}
	return nil
}

type clientRequest struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (r clientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return invalid("email is not valid")
		}
	}
	return nil
}

type professionalRequest struct {
	ID        *int64 `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Active    *bool  `json:"active"`
}

func (r professionalRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	return nil
}

type treatmentRequest struct {
	ID              *int64          `json:"id"`
	ParentID        *int64          `json:"parentId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
}

func (r treatmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if r.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if r.DurationMinutes <= 0 {
		return invalid("durationMinutes must be positive")
	}
	if r.ID != nil && r.ParentID != nil && *r.ID == *r.ParentID {
		return invalid("a treatment cannot be its own parent")
	}
	return nil
}

type productRequest struct {
	ID       *int64          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock"`
}

func (r productRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if r.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if r.Stock < 0 || r.MinStock < 0 {
		return invalid("stock values must not be negative")
	}
	return nil
}

type paymentMethodRequest struct {
	ID     *int64 `json:"id"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

func (r paymentMethodRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	return nil
}

type saleItemRequest struct {
	ProductID   *int64          `json:"productId"`
	TreatmentID *int64          `json:"treatmentId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type salePaymentRequest struct {
	PaymentMethodID int64           `json:"paymentMethodId"`
	Amount          decimal.Decimal `json:"amount"`
}

type saleRequest struct {
	AppointmentID *int64               `json:"appointmentId"`
	ClientID      *int64               `json:"clientId"`
	Items         []saleItemRequest    `json:"items"`
	Payments      []salePaymentRequest `json:"payments"`
}

func (r saleRequest) Validate() error {
	if len(r.Payments) == 0 {
		return invalid("at least one payment is required")
	}
	for i, it := range r.Items {
		if (it.ProductID == nil) == (it.TreatmentID == nil) {
			return invalid("items[%d] needs exactly one of productId or treatmentId", i)
		}
		if it.Quantity <= 0 {
			return invalid("items[%d].quantity must be positive", i)
		}
		if it.UnitPrice.IsNegative() {
			return invalid("items[%d].unitPrice must not be negative", i)
		}
	}
	for i, p := range r.Payments {
		if p.PaymentMethodID <= 0 {
			return invalid("payments[%d].paymentMethodId is required", i)
		}
		if !p.Amount.IsPositive() {
			return invalid("payments[%d].amount must be positive", i)
		}
	}
	return nil
}

type expenseRequest struct {
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
}

func (r expenseRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return invalid("description is required")
	}
	if !r.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if r.Date != "" {
		if _, err := parseDate(r.Date); err != nil {
			return err
		}
	}
	return nil
}

type settingsRequest struct {
	BusinessName         string           `json:"businessName"`
	BusinessAddress      string           `json:"businessAddress"`
	BusinessPhone        string           `json:"businessPhone"`
	CurrencyCode         string           `json:"currencyCode"`
	WorkdayStart         string           `json:"workdayStart"`
	WorkdayEnd           string           `json:"workdayEnd"`
	SlotMinutes          int              `json:"slotMinutes"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
}

func (r settingsRequest) Validate() error {
	if c := strings.TrimSpace(r.CurrencyCode); c != "" && len(c) != 3 {
		return invalid("currencyCode must be a 3 letter ISO code")
	}
	if r.SlotMinutes < 0 {
		return invalid("slotMinutes must not be negative")
	}
	return nil
}

func (r settingsRequest) toDomain() domain.Settings {
	s := domain.Settings{
		BusinessName:    strings.TrimSpace(r.BusinessName),
		BusinessAddress: strings.TrimSpace(r.BusinessAddress),
		BusinessPhone:   strings.TrimSpace(r.BusinessPhone),
		CurrencyCode:    r.CurrencyCode,
		WorkdayStart:    r.WorkdayStart,
		WorkdayEnd:      r.WorkdayEnd,
		SlotMinutes:     r.SlotMinutes,
	}
	if r.CommissionPercentage != nil {
		s.CommissionPercentage = decimal.NewNullDecimal(*r.CommissionPercentage)
	}
	return s
}
