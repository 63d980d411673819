package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/domain"
)

type SettingsRepository struct {
	DB *db.Postgres
}

const settingsColumns = `business_name, business_address, business_phone, currency_code,
	workday_start, workday_end, slot_minutes, commission_percentage, logo IS NOT NULL, updated_at`

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	if err := row.Scan(
		&s.BusinessName, &s.BusinessAddress, &s.BusinessPhone, &s.CurrencyCode,
		&s.WorkdayStart, &s.WorkdayEnd, &s.SlotMinutes, &s.CommissionPercentage, &s.HasLogo, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s, err := scanSettings(r.DB.Pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id=1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r SettingsRepository) Save(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	return scanSettings(r.DB.Pool.QueryRow(ctx, `
		INSERT INTO settings (id, business_name, business_address, business_phone, currency_code,
		                      workday_start, workday_end, slot_minutes, commission_percentage, updated_at)
		VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8, now())
		ON CONFLICT (id) DO UPDATE SET
			business_name=EXCLUDED.business_name,
			business_address=EXCLUDED.business_address,
			business_phone=EXCLUDED.business_phone,
			currency_code=EXCLUDED.currency_code,
			workday_start=EXCLUDED.workday_start,
			workday_end=EXCLUDED.workday_end,
			slot_minutes=EXCLUDED.slot_minutes,
			commission_percentage=EXCLUDED.commission_percentage,
			updated_at=now()
		RETURNING `+settingsColumns,
		s.BusinessName, s.BusinessAddress, s.BusinessPhone, s.CurrencyCode,
		s.WorkdayStart, s.WorkdayEnd, s.SlotMinutes, s.CommissionPercentage))
}

// Logo returns the stored business logo and its content type.
func (r SettingsRepository) Logo(ctx context.Context) ([]byte, string, error) {
	var (
		data []byte
		mime *string
	)
	err := r.DB.Pool.QueryRow(ctx, `SELECT logo, logo_mime FROM settings WHERE id=1`).Scan(&data, &mime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", ErrNotFound
	}
	ct := "application/octet-stream"
	if mime != nil && *mime != "" {
		ct = *mime
	}
	return data, ct, nil
}

func (r SettingsRepository) SetLogo(ctx context.Context, data []byte, mime string) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO settings (id, logo, logo_mime, updated_at)
		VALUES (1,$1,$2, now())
		ON CONFLICT (id) DO UPDATE SET logo=EXCLUDED.logo, logo_mime=EXCLUDED.logo_mime, updated_at=now()
	`, data, mime)
	return err
}

func (r SettingsRepository) ClearLogo(ctx context.Context) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE settings SET logo=NULL, logo_mime=NULL, updated_at=now() WHERE id=1`)
	return err
}
