package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
	"salonpos-backend/internal/service"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(app *appContext) error {
	if err := app.DB.Migrate(app.Ctx); err != nil {
		return err
	}
	fmt.Println("schema up to date")
	return nil
}

type SeedCmd struct{}

func (c *SeedCmd) Run(app *appContext) error {
	if err := (repository.PaymentMethodRepository{DB: app.DB}).SeedDefaults(app.Ctx); err != nil {
		return err
	}
	fmt.Println("default payment methods ready")
	return nil
}

type CreateUserCmd struct {
	Email    string `help:"Login email." required:""`
	Name     string `help:"Display name." required:""`
	Role     string `help:"Role." enum:"admin,receptionist,professional" default:"admin"`
	Password string `help:"Password, at least 8 characters." required:""`
}

func (c *CreateUserCmd) Run(app *appContext) error {
	svc := service.AuthService{
		Config: app.Config,
		Users:  repository.UserRepository{DB: app.DB},
		Logger: app.Logger,
	}
	u, err := svc.CreateUser(app.Ctx, service.CreateUserInput{
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
		Role:     domain.Role(c.Role),
	})
	if err != nil {
		return err
	}
	fmt.Printf("created user %d (%s, %s)\n", u.ID, u.Email, u.Role)
	return nil
}

type ReportCmd struct {
	Date string `arg:"" help:"Day to report, YYYY-MM-DD."`
}

func (c *ReportCmd) Run(app *appContext) error {
	date, err := parseDay(c.Date)
	if err != nil {
		return err
	}
	svc := service.ReportService{
		Source:   repository.ReportRepository{DB: app.DB},
		Settings: service.SettingsService{Config: app.Config, Repo: repository.SettingsRepository{DB: app.DB}},
	}
	rep, err := svc.Daily(app.Ctx, date)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func parseDay(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", value)
	}
	return d, nil
}
