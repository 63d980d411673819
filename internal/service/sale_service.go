package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type SaleStore interface {
	Create(ctx context.Context, in repository.CreateSaleInput) (*domain.Sale, error)
	ListByDate(ctx context.Context, date time.Time, loc *time.Location) ([]domain.Sale, error)
	Get(ctx context.Context, id int64) (*domain.Sale, error)
}

type SaleService struct {
	Sales    SaleStore
	Location *time.Location
	Logger   *slog.Logger
}

// Record stores a sale. At least one payment is required and every item must
// reference exactly one product or treatment.
func (s SaleService) Record(ctx context.Context, in repository.CreateSaleInput) (*domain.Sale, error) {
	if len(in.Payments) == 0 {
		return nil, fmt.Errorf("%w: at least one payment is required", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if (it.ProductID == nil) == (it.TreatmentID == nil) {
			return nil, fmt.Errorf("%w: item %d needs exactly one of productId or treatmentId", domain.ErrInvalidInput, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d quantity must be positive", domain.ErrInvalidInput, i)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d unit price must not be negative", domain.ErrInvalidInput, i)
		}
	}
	for i, p := range in.Payments {
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment %d amount must be positive", domain.ErrInvalidInput, i)
		}
	}
	sale, err := s.Sales.Create(ctx, in)
	if err != nil {
		return nil, upstream(err)
	}
	if s.Logger != nil {
		s.Logger.Info("sale recorded", "id", sale.ID, "code", sale.Code, "total", sale.Total.StringFixed(2))
	}
	return sale, nil
}

func (s SaleService) List(ctx context.Context, date time.Time) ([]domain.Sale, error) {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	items, err := s.Sales.ListByDate(ctx, date, loc)
	return items, upstream(err)
}

func (s SaleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	sale, err := s.Sales.Get(ctx, id)
	return sale, upstream(err)
}
