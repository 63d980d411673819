package handler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/domain"
)

func id(v int64) *int64 { return &v }

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     validator
		wantErr bool
	}{
		{"login ok", loginRequest{Email: "a@b.c", Password: "x"}, false},
		{"login missing password", loginRequest{Email: "a@b.c"}, true},
		{"user bad role", createUserRequest{Name: "A", Email: "a@b.c", Password: "12345678", Role: "owner"}, true},
		{"user bad email", createUserRequest{Name: "A", Email: "nope", Password: "12345678", Role: "admin"}, true},
		{"user ok", createUserRequest{Name: "A", Email: "a@b.c", Password: "12345678", Role: "receptionist"}, false},
		{"client no name", clientRequest{Phone: "123"}, true},
		{"client ok", clientRequest{Name: "Lucía"}, false},
		{"treatment zero duration", treatmentRequest{Name: "Corte"}, true},
		{"treatment own parent", treatmentRequest{ID: id(2), ParentID: id(2), Name: "Corte", DurationMinutes: 30}, true},
		{"treatment ok", treatmentRequest{Name: "Corte", DurationMinutes: 30, Price: decimal.NewFromInt(10)}, false},
		{"product negative stock", productRequest{Name: "Shampoo", Stock: -1}, true},
		{"sale without payments", saleRequest{}, true},
		{"sale item both refs", saleRequest{
			Items:    []saleItemRequest{{ProductID: id(1), TreatmentID: id(1), Quantity: 1}},
			Payments: []salePaymentRequest{{PaymentMethodID: 1, Amount: decimal.NewFromInt(1)}},
		}, true},
		{"sale ok", saleRequest{
			Items:    []saleItemRequest{{ProductID: id(1), Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
			Payments: []salePaymentRequest{{PaymentMethodID: 1, Amount: decimal.NewFromInt(200)}},
		}, false},
		{"expense zero amount", expenseRequest{Description: "Luz"}, true},
		{"expense bad date", expenseRequest{Description: "Luz", Amount: decimal.NewFromInt(1), Date: "ayer"}, true},
		{"settings bad currency", settingsRequest{CurrencyCode: "PESOS"}, true},
		{"settings ok", settingsRequest{CurrencyCode: "ARS", SlotMinutes: 15}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
