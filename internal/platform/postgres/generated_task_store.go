package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/logger"
	"github.com/avelldro/taskward/internal/store"
)

const generatedTaskColumns = `id, template_id, todoist_task_id, task_content,
	due_date, generated_at, is_completed`

// PostgresGeneratedTaskStore implements the store.GeneratedTaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGeneratedTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGeneratedTaskStore creates a new PostgreSQL implementation of the
// GeneratedTaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresGeneratedTaskStore(db store.DBTX, logger *slog.Logger) *PostgresGeneratedTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGeneratedTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "generated_task_store")),
	}
}

// Ensure PostgresGeneratedTaskStore implements store.GeneratedTaskStore interface
var _ store.GeneratedTaskStore = (*PostgresGeneratedTaskStore)(nil)

// Create implements store.GeneratedTaskStore.Create
// Returns store.ErrInvalidEntity if the owning template does not exist.
func (s *PostgresGeneratedTaskStore) Create(ctx context.Context, g *domain.GeneratedTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := g.Validate(); err != nil {
		log.Warn("generated task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("generated_task_id", g.ID.String()))
		return err
	}

	query := `
		INSERT INTO generated_tasks (` + generatedTaskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		g.ID,
		g.TemplateID,
		g.TodoistTaskID,
		g.TaskContent,
		g.DueDate,
		g.GeneratedAt,
		g.IsCompleted,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: template with ID %s not found",
				store.ErrInvalidEntity, g.TemplateID)
		}
		log.Error("failed to create generated task record",
			slog.String("error", err.Error()),
			slog.String("generated_task_id", g.ID.String()))
		return err
	}

	log.Debug("generated task recorded",
		slog.String("generated_task_id", g.ID.String()),
		slog.String("template_id", g.TemplateID.String()),
		slog.String("todoist_task_id", g.TodoistTaskID))
	return nil
}

// ListByTemplate implements store.GeneratedTaskStore.ListByTemplate
func (s *PostgresGeneratedTaskStore) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*domain.GeneratedTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + generatedTaskColumns + `
		FROM generated_tasks
		WHERE template_id = $1
		ORDER BY due_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, templateID)
	if err != nil {
		log.Error("failed to list generated tasks",
			slog.String("error", err.Error()),
			slog.String("template_id", templateID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.GeneratedTask
	for rows.Next() {
		var g domain.GeneratedTask
		err := rows.Scan(
			&g.ID,
			&g.TemplateID,
			&g.TodoistTaskID,
			&g.TaskContent,
			&g.DueDate,
			&g.GeneratedAt,
			&g.IsCompleted,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// MarkCompletedByTaskID implements store.GeneratedTaskStore.MarkCompletedByTaskID
func (s *PostgresGeneratedTaskStore) MarkCompletedByTaskID(ctx context.Context, todoistTaskID string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE generated_tasks
		SET is_completed = TRUE
		WHERE todoist_task_id = $1 AND NOT is_completed
	`
	result, err := s.db.ExecContext(ctx, query, todoistTaskID)
	if err != nil {
		log.Error("failed to mark generated tasks completed",
			slog.String("error", err.Error()),
			slog.String("todoist_task_id", todoistTaskID))
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}
