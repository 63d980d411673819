package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		password_hash TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id INT PRIMARY KEY DEFAULT 1,
		business_name TEXT NOT NULL DEFAULT '',
		business_address TEXT NOT NULL DEFAULT '',
		business_phone TEXT NOT NULL DEFAULT '',
		currency_code TEXT NOT NULL DEFAULT 'ARS',
		workday_start TEXT NOT NULL DEFAULT '',
		workday_end TEXT NOT NULL DEFAULT '',
		slot_minutes INT NOT NULL DEFAULT 0,
		commission_percentage NUMERIC(5,2),
		logo BYTEA,
		logo_mime TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (id = 1)
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS professionals (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS treatments (
		id BIGSERIAL PRIMARY KEY,
		parent_id BIGINT REFERENCES treatments(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		duration_minutes INT NOT NULL CHECK (duration_minutes > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		appointment_date DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		client_id BIGINT REFERENCES clients(id),
		professional_id BIGINT REFERENCES professionals(id),
		treatment_id BIGINT REFERENCES treatments(id),
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		deposit NUMERIC(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_date_idx ON appointments (appointment_date)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		appointment_id BIGINT REFERENCES appointments(id),
		client_id BIGINT REFERENCES clients(id),
		total NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id BIGSERIAL PRIMARY KEY,
		sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		product_id BIGINT REFERENCES products(id),
		treatment_id BIGINT REFERENCES treatments(id),
		name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(12,2) NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		payment_method_id BIGINT NOT NULL REFERENCES payment_methods(id),
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		expense_date DATE NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS expenses_date_idx ON expenses (expense_date)`,
	`INSERT INTO settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
}

// Migrate creates the schema. Every statement is idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
