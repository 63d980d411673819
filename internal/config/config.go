package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application runtime configuration.
type Config struct {
	Env                  string
	HTTPPort             string
	DatabaseURL          string
	JWTSecret            string
	CookieName           string
	CookieSecure         bool
	AccessTokenTTL       time.Duration
	GoogleClientID       string
	FirebaseProjectID    string
	FirebaseCredFile     string
	Timezone             string
	CurrencyCode         string
	WorkdayStart         string
	WorkdayEnd           string
	SlotGranularity      time.Duration
	ClipSlotsToWorkday   bool
	CommissionPercentage decimal.Decimal
	RateLimitPerMinute   int
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	ShutdownTimeout      time.Duration
}

// Load reads environment variables and .env (if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CookieName:           getEnv("AUTH_COOKIE_NAME", "token"),
		CookieSecure:         getBool("AUTH_COOKIE_SECURE", false),
		AccessTokenTTL:       getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		FirebaseProjectID:    os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredFile:     os.Getenv("FIREBASE_CREDENTIALS"),
		Timezone:             getEnv("APP_TIMEZONE", "America/Argentina/Buenos_Aires"),
		CurrencyCode:         getEnv("CURRENCY_CODE", "ARS"),
		WorkdayStart:         getEnv("WORKDAY_START", "09:00"),
		WorkdayEnd:           getEnv("WORKDAY_END", "19:00"),
		SlotGranularity:      getDuration("SLOT_GRANULARITY", 30*time.Minute),
		ClipSlotsToWorkday:   getBool("CLIP_SLOTS_TO_WORKDAY", false),
		CommissionPercentage: getDecimal("COMMISSION_PERCENTAGE", decimal.NewFromInt(10)),
		RateLimitPerMinute:   getInt("RATE_LIMIT_PER_MINUTE", 200),
		ReadTimeout:          getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:         getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:          getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:      getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, errors.New("APP_TIMEZONE is not a valid IANA zone")
	}
	return cfg, nil
}

// Location returns the business time zone, UTC if it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := decimal.NewFromString(val)
	if err != nil || d.IsNegative() {
		return fallback
	}
	return d
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Support seconds as integer without suffix.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
