package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/db"
	"salonpos-backend/internal/handler"
	"salonpos-backend/internal/repository"
	"salonpos-backend/internal/server"
	"salonpos-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "err", err)
		os.Exit(1)
	}

	// Firebase Auth (optional)
	var firebaseAuth *auth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	loc := cfg.Location()

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	clientRepo := repository.ClientRepository{DB: pg}
	professionalRepo := repository.ProfessionalRepository{DB: pg}
	treatmentRepo := repository.TreatmentRepository{DB: pg}
	productRepo := repository.ProductRepository{DB: pg}
	paymentMethodRepo := repository.PaymentMethodRepository{DB: pg}
	appointmentRepo := repository.AppointmentRepository{DB: pg}
	saleRepo := repository.SaleRepository{DB: pg}
	expenseRepo := repository.ExpenseRepository{DB: pg}
	reportRepo := repository.ReportRepository{DB: pg}
	dashboardRepo := repository.DashboardRepository{DB: pg}
	settingsRepo := repository.SettingsRepository{DB: pg}

	if err := paymentMethodRepo.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed payment methods", "err", err)
		os.Exit(1)
	}

	// services
	settingsSvc := service.SettingsService{Config: cfg, Repo: settingsRepo}
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger, FirebaseAuth: firebaseAuth}
	bookingSvc := service.BookingService{
		Appointments: appointmentRepo,
		Treatments:   treatmentRepo,
		Settings:     settingsSvc,
		Logger:       logger,
	}
	saleSvc := service.SaleService{Sales: saleRepo, Location: loc, Logger: logger}
	reportSvc := service.ReportService{Source: reportRepo, Settings: settingsSvc}

	handlers := server.Handlers{
		Health:        handler.HealthHandler{DB: pg},
		Auth:          handler.AuthHandler{Service: authSvc, CookieName: cfg.CookieName, CookieSecure: cfg.CookieSecure},
		Users:         handler.UserHandler{Service: authSvc},
		Appointments:  handler.AppointmentHandler{Service: bookingSvc},
		Clients:       handler.ClientHandler{Repo: clientRepo},
		Professionals: handler.ProfessionalHandler{Repo: professionalRepo},
		Treatments:    handler.TreatmentHandler{Repo: treatmentRepo},
		Products:      handler.ProductHandler{Repo: productRepo},
		Payments:      handler.PaymentMethodHandler{Repo: paymentMethodRepo},
		Sales:         handler.SaleHandler{Service: saleSvc},
		Expenses:      handler.ExpenseHandler{Repo: expenseRepo, Location: loc},
		Reports:       handler.ReportHandler{Service: reportSvc},
		Dashboard:     handler.DashboardHandler{Repo: dashboardRepo, Location: loc},
		Settings:      handler.SettingsHandler{Service: settingsSvc},
	}

	metrics := server.NewMetrics(prometheus.DefaultRegisterer)
	router := server.NewRouter(cfg, logger, metrics, handlers)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Inline JSON or base64-encoded JSON is accepted as well as a file path.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
