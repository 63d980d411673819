package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type ProductRepository struct {
	DB *db.Postgres
}

const productColumns = `id, name, price, stock, min_stock, created_at, updated_at`

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r ProductRepository) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var row pgx.Row
	if p.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO products (name, price, stock, min_stock, created_at, updated_at)
			VALUES ($1,$2,$3,$4, now(), now())
			RETURNING `+productColumns, p.Name, p.Price, p.Stock, p.MinStock)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE products
			SET name=$1,
				price=$2,
				stock=$3,
				min_stock=$4,
				updated_at=now(),
				deleted_at=NULL
			WHERE id=$5
			RETURNING `+productColumns, p.Name, p.Price, p.Stock, p.MinStock, p.ID)
	}
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return saved, nil
}

func (r ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE products SET deleted_at = now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LowStock lists products at or below their minimum stock.
func (r ProductRepository) LowStock(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE deleted_at IS NULL AND stock <= min_stock
		ORDER BY stock ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// consumeStockTx decrements stock inside a sale transaction and returns the
// product name. Stock never goes below zero.
func consumeStockTx(ctx context.Context, tx pgx.Tx, productID int64, qty int) (string, error) {
	var name string
	err := tx.QueryRow(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id=$1 AND deleted_at IS NULL AND stock >= $2
		RETURNING name
	`, productID, qty).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if qErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1 AND deleted_at IS NULL)`, productID).Scan(&exists); qErr != nil {
				return "", qErr
			}
			if !exists {
				return "", fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return "", fmt.Errorf("%w: insufficient stock for product %d", domain.ErrConflict, productID)
		}
		return "", err
	}
	return name, nil
}
