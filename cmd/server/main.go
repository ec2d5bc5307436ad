// Package main implements the entry point for the taskward API server,
// which layers recurring task templates, auto-complete rules, task watchers,
// and in-app notifications over a remote task service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/avelldro/taskward/internal/config"
	"github.com/avelldro/taskward/internal/platform/logger"
	"github.com/avelldro/taskward/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "", "run database migrations (up, down, or status) and exit")
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrate != "" {
		if err := runMigrations(app, *migrate); err != nil {
			app.logger.Error("Migration failed", "command", *migrate, "error", err)
			app.cleanup()
			os.Exit(1)
		}
		app.cleanup()
		return
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	app, err := newApplication(cfg, db, appLogger)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database connection", "error", closeErr)
		}
		return nil, err
	}

	return app, nil
}

// runMigrations executes the named migration command against the
// application's database.
func runMigrations(app *application, command string) error {
	switch command {
	case "up":
		return postgres.MigrateUp(app.db)
	case "down":
		return postgres.MigrateDown(app.db)
	case "status":
		return postgres.MigrationStatus(app.db)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
}
