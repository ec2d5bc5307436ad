package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/logger"
	"github.com/avelldro/taskward/internal/store"
)

const watcherColumns = `id, todoist_task_id, task_content, watcher_id, added_by,
	added_at, notify_on_update, notify_on_complete, notify_on_overdue`

// PostgresWatcherStore implements the store.WatcherStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWatcherStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWatcherStore creates a new PostgreSQL implementation of the
// WatcherStore interface. If logger is nil, a default logger will be used.
func NewPostgresWatcherStore(db store.DBTX, logger *slog.Logger) *PostgresWatcherStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWatcherStore{
		db:     db,
		logger: logger.With(slog.String("component", "watcher_store")),
	}
}

// Ensure PostgresWatcherStore implements store.WatcherStore interface
var _ store.WatcherStore = (*PostgresWatcherStore)(nil)

// Create implements store.WatcherStore.Create
// Returns store.ErrWatcherExists if the user already watches the task and
// store.ErrInvalidEntity if a referenced user does not exist.
func (s *PostgresWatcherStore) Create(ctx context.Context, watcher *domain.TaskWatcher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := watcher.Validate(); err != nil {
		log.Warn("watcher validation failed during create",
			slog.String("error", err.Error()),
			slog.String("watcher_id", watcher.ID.String()))
		return err
	}

	query := `
		INSERT INTO task_watchers (` + watcherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		watcher.ID,
		watcher.TodoistTaskID,
		watcher.TaskContent,
		watcher.WatcherID,
		watcher.AddedBy,
		watcher.AddedAt,
		watcher.NotifyOnUpdate,
		watcher.NotifyOnComplete,
		watcher.NotifyOnOverdue,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrWatcherExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create watcher",
			slog.String("error", err.Error()),
			slog.String("watcher_id", watcher.ID.String()))
		return err
	}

	log.Info("watcher created successfully",
		slog.String("watcher_id", watcher.ID.String()),
		slog.String("todoist_task_id", watcher.TodoistTaskID))
	return nil
}

// GetByID implements store.WatcherStore.GetByID
// Returns store.ErrWatcherNotFound if the registration does not exist.
func (s *PostgresWatcherStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskWatcher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + watcherColumns + ` FROM task_watchers WHERE id = $1`

	watcher, err := scanWatcher(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWatcherNotFound
		}
		log.Error("failed to get watcher by ID",
			slog.String("error", err.Error()),
			slog.String("watcher_id", id.String()))
		return nil, err
	}

	return watcher, nil
}

// ListByTask implements store.WatcherStore.ListByTask
func (s *PostgresWatcherStore) ListByTask(ctx context.Context, todoistTaskID string) ([]*domain.TaskWatcher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + watcherColumns + `
		FROM task_watchers
		WHERE todoist_task_id = $1
		ORDER BY added_at
	`

	rows, err := s.db.QueryContext(ctx, query, todoistTaskID)
	if err != nil {
		log.Error("failed to list watchers",
			slog.String("error", err.Error()),
			slog.String("todoist_task_id", todoistTaskID))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var watchers []*domain.TaskWatcher
	for rows.Next() {
		watcher, err := scanWatcher(rows)
		if err != nil {
			return nil, err
		}
		watchers = append(watchers, watcher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return watchers, nil
}

// Delete implements store.WatcherStore.Delete
// Returns store.ErrWatcherNotFound if the registration does not exist.
func (s *PostgresWatcherStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM task_watchers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete watcher",
			slog.String("error", err.Error()),
			slog.String("watcher_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrWatcherNotFound
	}

	log.Info("watcher deleted successfully", slog.String("watcher_id", id.String()))
	return nil
}

func scanWatcher(row rowScanner) (*domain.TaskWatcher, error) {
	var watcher domain.TaskWatcher

	err := row.Scan(
		&watcher.ID,
		&watcher.TodoistTaskID,
		&watcher.TaskContent,
		&watcher.WatcherID,
		&watcher.AddedBy,
		&watcher.AddedAt,
		&watcher.NotifyOnUpdate,
		&watcher.NotifyOnComplete,
		&watcher.NotifyOnOverdue,
	)
	if err != nil {
		return nil, err
	}

	return &watcher, nil
}
