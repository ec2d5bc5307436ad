// Package main implements the batch runner: the auto-complete and template
// generation scans that keep the local state and the remote task service in
// step. By default it performs one run and exits; with -daemon it stays
// resident and runs on the configured cron schedule.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/robfig/cron/v3"

	"github.com/avelldro/taskward/internal/config"
	"github.com/avelldro/taskward/internal/platform/logger"
	"github.com/avelldro/taskward/internal/platform/postgres"
	"github.com/avelldro/taskward/internal/platform/todoist"
	"github.com/avelldro/taskward/internal/scheduler"
)

func main() {
	autoCompleteOnly := flag.Bool("auto-complete-only", false, "run only the auto-complete scan")
	generateOnly := flag.Bool("generate-only", false, "run only the template generation scan")
	daemon := flag.Bool("daemon", false, "stay resident and run on the configured cron schedule")
	flag.Parse()

	if *autoCompleteOnly && *generateOnly {
		log.Fatal("-auto-complete-only and -generate-only are mutually exclusive")
	}

	mode := scheduler.ModeBoth
	switch {
	case *autoCompleteOnly:
		mode = scheduler.ModeAutoCompleteOnly
	case *generateOnly:
		mode = scheduler.ModeGenerateOnly
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database connection", "error", err)
		}
	}()

	runner, err := buildRunner(cfg, db, appLogger)
	if err != nil {
		appLogger.Error("Failed to build runner", "error", err)
		os.Exit(1)
	}

	if *daemon {
		if err := runOnSchedule(cfg, runner, mode, appLogger); err != nil {
			appLogger.Error("Scheduled runner failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runner.Run(context.Background(), mode); err != nil {
		appLogger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

// openDatabase connects to the database with a startup ping.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// buildRunner wires the scheduler runner from the configuration and an open
// database connection.
func buildRunner(cfg *config.Config, db *sql.DB, appLogger *slog.Logger) (*scheduler.Runner, error) {
	client := todoist.NewClient(cfg.Todoist, appLogger)

	return scheduler.NewRunner(
		client,
		postgres.NewPostgresTemplateStore(db, appLogger),
		postgres.NewPostgresRuleStore(db, appLogger),
		postgres.NewPostgresGeneratedTaskStore(db, appLogger),
		postgres.NewPostgresWatcherStore(db, appLogger),
		postgres.NewPostgresNotificationStore(db, appLogger),
		appLogger,
	)
}

// runOnSchedule runs the scans on the configured cron schedule until the
// process receives SIGINT or SIGTERM. An in-flight run finishes before the
// process exits.
func runOnSchedule(cfg *config.Config, runner *scheduler.Runner, mode scheduler.Mode, appLogger *slog.Logger) error {
	if cfg.Runner.Schedule == "" {
		return fmt.Errorf("daemon mode requires a runner schedule (TASKWARD_RUNNER_SCHEDULE)")
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Runner.Schedule, func() {
		if err := runner.Run(context.Background(), mode); err != nil {
			appLogger.Error("Scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid runner schedule %q: %w", cfg.Runner.Schedule, err)
	}

	appLogger.Info("Runner daemon started", "schedule", cfg.Runner.Schedule)
	c.Start()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownCh

	appLogger.Info("Runner daemon shutting down...")
	<-c.Stop().Done()
	return nil
}
