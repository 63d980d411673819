package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enumerations
const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"

	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"

	ItemProduct   SaleItemKind = "product"
	ItemTreatment SaleItemKind = "treatment"
)

type AppointmentStatus string
type PaymentStatus string
type SaleItemKind string

// Valid reports whether s is one of the known appointment states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled:
		return true
	}
	return false
}

// Blocking reports whether an appointment in this state occupies its time range.
func (s AppointmentStatus) Blocking() bool {
	return s == AppointmentPending || s == AppointmentConfirmed
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Role         Role
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Settings are the business-wide values editable at runtime. Empty strings, a
// zero SlotMinutes and a null CommissionPercentage defer to configuration.
type Settings struct {
	BusinessName         string
	BusinessAddress      string
	BusinessPhone        string
	CurrencyCode         string
	WorkdayStart         string
	WorkdayEnd           string
	SlotMinutes          int
	CommissionPercentage decimal.NullDecimal
	HasLogo              bool
	UpdatedAt            time.Time
}

type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Professional struct {
	ID        int64
	Name      string
	Specialty string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Treatment is a bookable service. A treatment with ParentID set is a
// sub-treatment; sub-treatments never own children.
type Treatment struct {
	ID              int64
	ParentID        *int64
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	SubTreatments   []Treatment
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

func (t Treatment) IsSubTreatment() bool { return t.ParentID != nil }

type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Stock     int
	MinStock  int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type PaymentMethod struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartyRef is the projection of a related record the reports need.
type PartyRef struct {
	ID   int64
	Name string
}

type Appointment struct {
	ID             int64
	Date           time.Time
	StartTime      string
	EndTime        string
	ClientID       *int64
	ProfessionalID *int64
	TreatmentID    *int64
	Client         *PartyRef
	Professional   *PartyRef
	Treatment      *PartyRef
	Price          decimal.Decimal
	Deposit        decimal.Decimal
	Status         AppointmentStatus
	PaymentStatus  PaymentStatus
	Notes          string
	Sales          []Sale
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Sale struct {
	ID            int64
	Code          string
	AppointmentID *int64
	ClientID      *int64
	Total         decimal.Decimal
	Items         []SaleItem
	Payments      []Payment
	CreatedAt     time.Time
}

type SaleItem struct {
	ID          int64
	SaleID      int64
	Kind        SaleItemKind
	ProductID   *int64
	TreatmentID *int64
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type Payment struct {
	ID              int64
	SaleID          int64
	PaymentMethodID int64
	PaymentMethod   PaymentMethod
	Amount          decimal.Decimal
	CreatedAt       time.Time
}

type Expense struct {
	ID            int64
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	CreatedAt     time.Time
	DeletedAt     *time.Time
}
