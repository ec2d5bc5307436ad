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

const templateColumns = `id, name, content_template, description_template, project_id,
	frequency, priority, labels, auto_complete, is_active, created_by,
	created_at, updated_at, last_generated`

// PostgresTemplateStore implements the store.TemplateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTemplateStore creates a new PostgreSQL implementation of the
// TemplateStore interface. If logger is nil, a default logger will be used.
func NewPostgresTemplateStore(db store.DBTX, logger *slog.Logger) *PostgresTemplateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTemplateStore{
		db:     db,
		logger: logger.With(slog.String("component", "template_store")),
	}
}

// Ensure PostgresTemplateStore implements store.TemplateStore interface
var _ store.TemplateStore = (*PostgresTemplateStore)(nil)

// Create implements store.TemplateStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresTemplateStore) Create(ctx context.Context, tmpl *domain.TaskTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tmpl.Validate(); err != nil {
		log.Warn("template validation failed during create",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	query := `
		INSERT INTO task_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		tmpl.ID,
		tmpl.Name,
		tmpl.ContentTemplate,
		tmpl.DescriptionTemplate,
		tmpl.ProjectID,
		tmpl.Frequency,
		tmpl.Priority,
		tmpl.Labels,
		tmpl.AutoComplete,
		tmpl.IsActive,
		tmpl.CreatedBy,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
		tmpl.LastGenerated,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, tmpl.CreatedBy)
		}
		log.Error("failed to create template",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	log.Info("template created successfully",
		slog.String("template_id", tmpl.ID.String()),
		slog.String("name", tmpl.Name))
	return nil
}

// GetByID implements store.TemplateStore.GetByID
// Returns store.ErrTemplateNotFound if the template does not exist.
func (s *PostgresTemplateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskTemplate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + templateColumns + ` FROM task_templates WHERE id = $1`

	tmpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTemplateNotFound
		}
		log.Error("failed to get template by ID",
			slog.String("error", err.Error()),
			slog.String("template_id", id.String()))
		return nil, err
	}

	return tmpl, nil
}

// List implements store.TemplateStore.List
func (s *PostgresTemplateStore) List(ctx context.Context) ([]*domain.TaskTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM task_templates ORDER BY created_at DESC`
	return s.list(ctx, query)
}

// ListActive implements store.TemplateStore.ListActive
func (s *PostgresTemplateStore) ListActive(ctx context.Context) ([]*domain.TaskTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM task_templates WHERE is_active ORDER BY created_at DESC`
	return s.list(ctx, query)
}

func (s *PostgresTemplateStore) list(ctx context.Context, query string, args ...any) ([]*domain.TaskTemplate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list templates", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.TaskTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update implements store.TemplateStore.Update
// Returns store.ErrTemplateNotFound if the template does not exist.
func (s *PostgresTemplateStore) Update(ctx context.Context, tmpl *domain.TaskTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tmpl.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE task_templates
		SET name = $2, content_template = $3, description_template = $4,
			project_id = $5, frequency = $6, priority = $7, labels = $8,
			auto_complete = $9, is_active = $10, updated_at = $11,
			last_generated = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		tmpl.ID,
		tmpl.Name,
		tmpl.ContentTemplate,
		tmpl.DescriptionTemplate,
		tmpl.ProjectID,
		tmpl.Frequency,
		tmpl.Priority,
		tmpl.Labels,
		tmpl.AutoComplete,
		tmpl.IsActive,
		tmpl.UpdatedAt,
		tmpl.LastGenerated,
	)
	if err != nil {
		log.Error("failed to update template",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrTemplateNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.TaskTemplate, error) {
	var tmpl domain.TaskTemplate
	var frequency string
	var lastGenerated sql.NullTime

	err := row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.ContentTemplate,
		&tmpl.DescriptionTemplate,
		&tmpl.ProjectID,
		&frequency,
		&tmpl.Priority,
		&tmpl.Labels,
		&tmpl.AutoComplete,
		&tmpl.IsActive,
		&tmpl.CreatedBy,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
		&lastGenerated,
	)
	if err != nil {
		return nil, err
	}

	tmpl.Frequency = domain.Frequency(frequency)
	if lastGenerated.Valid {
		t := lastGenerated.Time
		tmpl.LastGenerated = &t
	}

	return &tmpl, nil
}
