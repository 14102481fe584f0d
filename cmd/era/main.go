package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/era/internal/cli"
	"github.com/alexanderramin/era/internal/config"
	"github.com/alexanderramin/era/internal/db"
	"github.com/alexanderramin/era/internal/repository"
	"github.com/alexanderramin/era/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cfg.LogUseCases {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	database, dialect, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSessionRepo(database, dialect)
	settingsRepo := repository.NewSettingsRepo(database, dialect)
	reminderRepo := repository.NewReminderRepo(database, dialect)

	uow := db.NewUnitOfWork(database)

	// Use-case telemetry: always to Prometheus, to stderr on request.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observers := []service.UseCaseObserver{service.NewMetricsUseCaseObserver(reg)}
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	goals := service.NewGoalStore(settingsRepo)

	app := &cli.App{
		Analytics: service.NewAnalyticsService(sessionRepo, goals, nil, loc, observers...),
		Sessions: service.NewSessionService(
			sessionRepo,
			service.StaticEntitlements{Pro: cfg.Pro},
			service.SessionSettings{
				Timing:    cfg.BreathTiming(),
				FreeQuota: cfg.FreeSessionQuota,
				Logger:    logger,
			},
			observers...,
		),
		Reminders: service.NewReminderService(reminderRepo, uow, dialect, observers...),
		Config:    cfg,
		Location:  loc,
		Logger:    logger,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}

	// Animated output and forms need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
