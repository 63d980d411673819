package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/salon")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/salon")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("WORKDAY_START", "")
	t.Setenv("SLOT_GRANULARITY", "")
	t.Setenv("COMMISSION_PERCENTAGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkdayStart != "09:00" || cfg.WorkdayEnd != "19:00" {
		t.Errorf("unexpected window %s-%s", cfg.WorkdayStart, cfg.WorkdayEnd)
	}
	if cfg.SlotGranularity != 30*time.Minute {
		t.Errorf("unexpected granularity %s", cfg.SlotGranularity)
	}
	if !cfg.CommissionPercentage.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected commission %s", cfg.CommissionPercentage)
	}
	if cfg.ClipSlotsToWorkday {
		t.Error("clipping must default to off")
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{"go syntax", "45m", 45 * time.Minute},
		{"integer seconds", "90", 90 * time.Second},
		{"garbage", "soon", time.Hour},
		{"empty", "", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.val)
			if got := getDuration("TEST_DURATION", time.Hour); got != tt.want {
				t.Errorf("getDuration(%q) = %s, want %s", tt.val, got, tt.want)
			}
		})
	}
}

func TestGetDecimalRejectsNegative(t *testing.T) {
	t.Setenv("TEST_PCT", "-5")
	if got := getDecimal("TEST_PCT", decimal.NewFromInt(10)); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected fallback, got %s", got)
	}
	t.Setenv("TEST_PCT", "12.5")
	if got := getDecimal("TEST_PCT", decimal.NewFromInt(10)); !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected 12.5, got %s", got)
	}
}
