package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"salonpos-backend/internal/availability"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/domain"
)

// MaxLogoBytes bounds the business logo upload.
const MaxLogoBytes = 5 << 20

type SettingsStore interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) (*domain.Settings, error)
	Logo(ctx context.Context) ([]byte, string, error)
	SetLogo(ctx context.Context, data []byte, mime string) error
	ClearLogo(ctx context.Context) error
}

type SettingsService struct {
	Config config.Config
	Repo   SettingsStore
}

// Schedule is the effective configuration the calculators run with.
type Schedule struct {
	WorkdayStart         availability.TimeOfDay
	WorkdayEnd           availability.TimeOfDay
	Granularity          time.Duration
	ClipToWorkday        bool
	CommissionPercentage decimal.Decimal
	CurrencyCode         string
}

// Schedule merges stored settings over the configured defaults.
func (s SettingsService) Schedule(ctx context.Context) (Schedule, error) {
	sched := s.defaults()
	stored, err := s.Repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sched, nil
		}
		return sched, upstream(err)
	}
	if stored.WorkdayStart != "" && stored.WorkdayEnd != "" {
		start, errStart := availability.ParseTimeOfDay(stored.WorkdayStart)
		end, errEnd := availability.ParseTimeOfDay(stored.WorkdayEnd)
		if errStart == nil && errEnd == nil && end > start {
			sched.WorkdayStart, sched.WorkdayEnd = start, end
		}
	}
	if stored.SlotMinutes > 0 {
		sched.Granularity = time.Duration(stored.SlotMinutes) * time.Minute
	}
	if stored.CommissionPercentage.Valid {
		sched.CommissionPercentage = stored.CommissionPercentage.Decimal
	}
	if stored.CurrencyCode != "" {
		sched.CurrencyCode = stored.CurrencyCode
	}
	return sched, nil
}

func (s SettingsService) defaults() Schedule {
	sched := Schedule{
		WorkdayStart:         availability.DefaultWorkdayStart,
		WorkdayEnd:           availability.DefaultWorkdayEnd,
		Granularity:          s.Config.SlotGranularity,
		ClipToWorkday:        s.Config.ClipSlotsToWorkday,
		CommissionPercentage: s.Config.CommissionPercentage,
		CurrencyCode:         s.Config.CurrencyCode,
	}
	start, errStart := availability.ParseTimeOfDay(s.Config.WorkdayStart)
	end, errEnd := availability.ParseTimeOfDay(s.Config.WorkdayEnd)
	if errStart == nil && errEnd == nil && end > start {
		sched.WorkdayStart, sched.WorkdayEnd = start, end
	}
	if sched.Granularity <= 0 {
		sched.Granularity = availability.DefaultGranularity
	}
	return sched
}

func (s SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	st, err := s.Repo.Get(ctx)
	return st, upstream(err)
}

// Update stores in after checking the workday window and percentages.
func (s SettingsService) Update(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	if (in.WorkdayStart == "") != (in.WorkdayEnd == "") {
		return nil, fmt.Errorf("%w: workday start and end go together", domain.ErrInvalidInput)
	}
	if in.WorkdayStart != "" {
		start, err := availability.ParseTimeOfDay(in.WorkdayStart)
		if err != nil {
			return nil, err
		}
		end, err := availability.ParseTimeOfDay(in.WorkdayEnd)
		if err != nil {
			return nil, err
		}
		if end <= start {
			return nil, fmt.Errorf("%w: workday end must be after workday start", domain.ErrInvalidInput)
		}
	}
	if in.SlotMinutes < 0 || in.SlotMinutes > 24*60 {
		return nil, fmt.Errorf("%w: slot minutes out of range", domain.ErrInvalidInput)
	}
	if pct := in.CommissionPercentage; pct.Valid && (pct.Decimal.IsNegative() || pct.Decimal.GreaterThan(decimal.NewFromInt(100))) {
		return nil, fmt.Errorf("%w: commission percentage must be between 0 and 100", domain.ErrInvalidInput)
	}
	in.CurrencyCode = strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	saved, err := s.Repo.Save(ctx, in)
	return saved, upstream(err)
}

func (s SettingsService) Logo(ctx context.Context) ([]byte, string, error) {
	data, mime, err := s.Repo.Logo(ctx)
	return data, mime, upstream(err)
}

// UploadLogo accepts PNG or JPEG images up to MaxLogoBytes. declared is the
// client supplied content type; the sniffed type wins when they differ.
func (s SettingsService) UploadLogo(ctx context.Context, data []byte, declared string) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if len(data) > MaxLogoBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxLogoBytes)
	}
	mime := strings.ToLower(strings.TrimSpace(declared))
	if sniffed := http.DetectContentType(data); sniffed != "application/octet-stream" {
		mime = sniffed
	}
	if mime == "image/jpg" {
		mime = "image/jpeg"
	}
	if mime != "image/png" && mime != "image/jpeg" {
		return fmt.Errorf("%w: logo must be PNG or JPEG", domain.ErrInvalidInput)
	}
	return upstream(s.Repo.SetLogo(ctx, data, mime))
}

func (s SettingsService) ClearLogo(ctx context.Context) error {
	return upstream(s.Repo.ClearLogo(ctx))
}
