package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type fakeSales struct {
	created []repository.CreateSaleInput
	loc     *time.Location
}

func (f *fakeSales) Create(_ context.Context, in repository.CreateSaleInput) (*domain.Sale, error) {
	f.created = append(f.created, in)
	return &domain.Sale{ID: int64(len(f.created)), Code: "VTA-TEST"}, nil
}

func (f *fakeSales) ListByDate(_ context.Context, _ time.Time, loc *time.Location) ([]domain.Sale, error) {
	f.loc = loc
	return nil, nil
}

func (f *fakeSales) Get(context.Context, int64) (*domain.Sale, error) {
	return nil, repository.ErrNotFound
}

func TestRecordValidation(t *testing.T) {
	pay := []repository.CreateSalePayment{{PaymentMethodID: 1, Amount: decimal.NewFromInt(100)}}
	tests := []struct {
		name string
		in   repository.CreateSaleInput
	}{
		{"no payments", repository.CreateSaleInput{}},
		{"item without reference", repository.CreateSaleInput{
			Items:    []repository.CreateSaleItem{{Quantity: 1}},
			Payments: pay,
		}},
		{"item with both references", repository.CreateSaleInput{
			Items:    []repository.CreateSaleItem{{ProductID: ptrID(1), TreatmentID: ptrID(2), Quantity: 1}},
			Payments: pay,
		}},
		{"zero quantity", repository.CreateSaleInput{
			Items:    []repository.CreateSaleItem{{ProductID: ptrID(1)}},
			Payments: pay,
		}},
		{"negative price", repository.CreateSaleInput{
			Items:    []repository.CreateSaleItem{{ProductID: ptrID(1), Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
			Payments: pay,
		}},
		{"zero payment", repository.CreateSaleInput{
			Payments: []repository.CreateSalePayment{{PaymentMethodID: 1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeSales{}
			svc := SaleService{Sales: store}
			if _, err := svc.Record(context.Background(), tt.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if len(store.created) != 0 {
				t.Fatal("invalid sale must not reach the store")
			}
		})
	}
}

func TestRecordPassesThrough(t *testing.T) {
	store := &fakeSales{}
	svc := SaleService{Sales: store}
	_, err := svc.Record(context.Background(), repository.CreateSaleInput{
		AppointmentID: ptrID(4),
		Items:         []repository.CreateSaleItem{{TreatmentID: ptrID(1), Quantity: 1, UnitPrice: decimal.NewFromInt(5000)}},
		Payments:      []repository.CreateSalePayment{{PaymentMethodID: 1, Amount: decimal.NewFromInt(5000)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d sales", len(store.created))
	}
}

func TestListDefaultsToUTC(t *testing.T) {
	store := &fakeSales{}
	svc := SaleService{Sales: store}
	if _, err := svc.List(context.Background(), day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.loc != time.UTC {
		t.Fatalf("loc = %v, want UTC", store.loc)
	}
}
