package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type SaleRepository struct {
	DB *db.Postgres
}

type CreateSaleInput struct {
	AppointmentID *int64
	ClientID      *int64
	Items         []CreateSaleItem
	Payments      []CreateSalePayment
}

type CreateSaleItem struct {
	ProductID   *int64
	TreatmentID *int64
	Quantity    int
	UnitPrice   decimal.Decimal
}

type CreateSalePayment struct {
	PaymentMethodID int64
	Amount          decimal.Decimal
}

// Create records a sale with its items and payments in one transaction.
// Product items consume stock; a linked appointment is marked paid once the
// payments of all its sales reach its price.
func (r SaleRepository) Create(ctx context.Context, in CreateSaleInput) (*domain.Sale, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var apptPrice decimal.Decimal
	if in.AppointmentID != nil {
		err := tx.QueryRow(ctx, `SELECT price FROM appointments WHERE id=$1 FOR UPDATE`, *in.AppointmentID).Scan(&apptPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, *in.AppointmentID)
			}
			return nil, err
		}
	}

	sale := domain.Sale{
		Code:          newSaleCode(),
		AppointmentID: in.AppointmentID,
		ClientID:      in.ClientID,
		Total:         decimal.Zero,
	}
	for _, it := range in.Items {
		item := domain.SaleItem{
			ProductID:   it.ProductID,
			TreatmentID: it.TreatmentID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		switch {
		case it.ProductID != nil:
			item.Kind = domain.ItemProduct
			item.Name, err = consumeStockTx(ctx, tx, *it.ProductID, it.Quantity)
		case it.TreatmentID != nil:
			item.Kind = domain.ItemTreatment
			item.Name, err = treatmentNameTx(ctx, tx, *it.TreatmentID)
		default:
			err = fmt.Errorf("%w: item needs a product or a treatment", domain.ErrInvalidInput)
		}
		if err != nil {
			return nil, err
		}
		sale.Total = sale.Total.Add(item.Subtotal)
		sale.Items = append(sale.Items, item)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (code, appointment_id, client_id, total, created_at)
		VALUES ($1,$2,$3,$4, now())
		RETURNING id, created_at
	`, sale.Code, sale.AppointmentID, sale.ClientID, sale.Total).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: client %v", ErrNotFound, derefID(in.ClientID))
		}
		return nil, err
	}

	for i := range sale.Items {
		it := &sale.Items[i]
		it.SaleID = sale.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, kind, product_id, treatment_id, name, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, sale.ID, string(it.Kind), it.ProductID, it.TreatmentID, it.Name, it.Quantity, it.UnitPrice, it.Subtotal).Scan(&it.ID)
		if err != nil {
			return nil, err
		}
	}

	for _, p := range in.Payments {
		method, err := activeMethodTx(ctx, tx, p.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		pay := domain.Payment{SaleID: sale.ID, PaymentMethodID: method.ID, PaymentMethod: *method, Amount: p.Amount}
		err = tx.QueryRow(ctx, `
			INSERT INTO payments (sale_id, payment_method_id, amount, created_at)
			VALUES ($1,$2,$3, now())
			RETURNING id, created_at
		`, sale.ID, method.ID, p.Amount).Scan(&pay.ID, &pay.CreatedAt)
		if err != nil {
			return nil, err
		}
		sale.Payments = append(sale.Payments, pay)
	}

	if in.AppointmentID != nil {
		var paid decimal.Decimal
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(p.amount), 0)
			FROM payments p
			JOIN sales s ON s.id = p.sale_id
			WHERE s.appointment_id = $1
		`, *in.AppointmentID).Scan(&paid)
		if err != nil {
			return nil, err
		}
		if paid.GreaterThanOrEqual(apptPrice) {
			if _, err := tx.Exec(ctx, `UPDATE appointments SET payment_status=$2, updated_at=now() WHERE id=$1`,
				*in.AppointmentID, string(domain.PaymentPaid)); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &sale, nil
}

func newSaleCode() string {
	return "VTA-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func derefID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func treatmentNameTx(ctx context.Context, tx pgx.Tx, id int64) (string, error) {
	var name string
	err := tx.QueryRow(ctx, `SELECT name FROM treatments WHERE id=$1 AND deleted_at IS NULL`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: treatment %d", ErrNotFound, id)
		}
		return "", err
	}
	return name, nil
}

func activeMethodTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	err := tx.QueryRow(ctx, `
		SELECT id, name, active, created_at, updated_at
		FROM payment_methods WHERE id=$1
	`, id).Scan(&m.ID, &m.Name, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment method %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !m.Active {
		return nil, fmt.Errorf("%w: payment method %q is inactive", domain.ErrInvalidInput, m.Name)
	}
	return &m, nil
}

// ListByDate returns the sales created on date (in loc) with items and payments.
func (r SaleRepository) ListByDate(ctx context.Context, date time.Time, loc *time.Location) ([]domain.Sale, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, code, appointment_id, client_id, total, created_at
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC, id ASC
	`, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r SaleRepository) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	s, err := scanSale(r.DB.Pool.QueryRow(ctx, `
		SELECT id, code, appointment_id, client_id, total, created_at
		FROM sales WHERE id=$1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sales := []domain.Sale{*s}
	if err := r.attachLines(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func scanSale(row interface {
	Scan(dest ...any) error
}) (*domain.Sale, error) {
	var (
		s                domain.Sale
		apptID, clientID pgtype.Int8
	)
	if err := row.Scan(&s.ID, &s.Code, &apptID, &clientID, &s.Total, &s.CreatedAt); err != nil {
		return nil, err
	}
	if apptID.Valid {
		s.AppointmentID = &apptID.Int64
	}
	if clientID.Valid {
		s.ClientID = &clientID.Int64
	}
	return &s, nil
}

// attachLines loads items and payments for every sale in one query each.
func (r SaleRepository) attachLines(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]int64, len(sales))
	index := make(map[int64]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	itemRows, err := r.DB.Pool.Query(ctx, `
		SELECT id, sale_id, kind, product_id, treatment_id, name, quantity, unit_price, subtotal
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY id ASC
	`, ids)
	if err != nil {
		return err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			it                     domain.SaleItem
			kind                   string
			productID, treatmentID pgtype.Int8
		)
		if err := itemRows.Scan(&it.ID, &it.SaleID, &kind, &productID, &treatmentID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return err
		}
		it.Kind = domain.SaleItemKind(kind)
		if productID.Valid {
			it.ProductID = &productID.Int64
		}
		if treatmentID.Valid {
			it.TreatmentID = &treatmentID.Int64
		}
		i := index[it.SaleID]
		sales[i].Items = append(sales[i].Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	payments, err := paymentsForSales(ctx, r.DB.Pool, ids)
	if err != nil {
		return err
	}
	for _, p := range payments {
		i := index[p.SaleID]
		sales[i].Payments = append(sales[i].Payments, p)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// paymentsForSales returns payments joined with their method, in insertion order.
func paymentsForSales(ctx context.Context, q querier, saleIDs []int64) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, `
		SELECT p.id, p.sale_id, p.amount, p.created_at,
		       m.id, m.name, m.active, m.created_at, m.updated_at
		FROM payments p
		JOIN payment_methods m ON m.id = p.payment_method_id
		WHERE p.sale_id = ANY($1)
		ORDER BY p.id ASC
	`, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		m := &p.PaymentMethod
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &p.CreatedAt, &m.ID, &m.Name, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		p.PaymentMethodID = m.ID
		out = append(out, p)
	}
	return out, rows.Err()
}
