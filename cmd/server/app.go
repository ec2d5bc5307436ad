package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelldro/taskward/internal/config"
	"github.com/avelldro/taskward/internal/platform/postgres"
	"github.com/avelldro/taskward/internal/platform/todoist"
	"github.com/avelldro/taskward/internal/scheduler"
	"github.com/avelldro/taskward/internal/service"
	"github.com/avelldro/taskward/internal/service/auth"
	"github.com/avelldro/taskward/internal/store"
)

// application holds the server's wired dependencies: configuration, stores,
// services, and handlers' collaborators. It is built once at startup and
// torn down by cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	templateStore     store.TemplateStore
	ruleStore         store.RuleStore
	watcherStore      store.WatcherStore
	notificationStore store.NotificationStore
	generatedStore    store.GeneratedTaskStore

	todoistClient *todoist.Client

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	taskService         *service.TaskService
	templateService     *service.TemplateService
	ruleService         *service.RuleService
	watcherService      *service.WatcherService
	notificationService *service.NotificationService
}

// newApplication wires every component from the loaded configuration and an
// open database connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.templateStore = postgres.NewPostgresTemplateStore(db, logger)
	app.ruleStore = postgres.NewPostgresRuleStore(db, logger)
	app.watcherStore = postgres.NewPostgresWatcherStore(db, logger)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, logger)
	app.generatedStore = postgres.NewPostgresGeneratedTaskStore(db, logger)

	// Remote task service client
	app.todoistClient = todoist.NewClient(cfg.Todoist, logger)

	// Auth
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.passwordVerifier = auth.NewBcryptVerifier()

	// The runner doubles as the generator behind the manual trigger, so the
	// web path and the batch path share one generation code path.
	runner, err := scheduler.NewRunner(
		app.todoistClient,
		app.templateStore,
		app.ruleStore,
		app.generatedStore,
		app.watcherStore,
		app.notificationStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler runner: %w", err)
	}

	// Services
	app.taskService, err = service.NewTaskService(
		app.todoistClient,
		app.templateStore,
		app.ruleStore,
		app.watcherStore,
		app.notificationStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.templateService, err = service.NewTemplateService(
		app.templateStore, app.generatedStore, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create template service: %w", err)
	}

	app.ruleService, err = service.NewRuleService(app.ruleStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule service: %w", err)
	}

	app.watcherService, err = service.NewWatcherService(
		app.userStore, app.watcherStore, app.notificationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher service: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(app.notificationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
