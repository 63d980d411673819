package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/db"
)

// appContext is handed to every command's Run method.
type appContext struct {
	Ctx    context.Context
	Config config.Config
	DB     *db.Postgres
	Logger *slog.Logger
}

var CLI struct {
	Version kong.VersionFlag

	Migrate    MigrateCmd    `cmd:"" help:"Create or update the database schema."`
	Seed       SeedCmd       `cmd:"" help:"Insert the default payment methods."`
	CreateUser CreateUserCmd `cmd:"" name:"create-user" help:"Create a staff account."`
	Report     ReportCmd     `cmd:"" help:"Print the daily report for a date."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("salonctl"),
		kong.Description("Administrative tasks for the salon backend"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	err = kctx.Run(&appContext{Ctx: ctx, Config: cfg, DB: pg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
