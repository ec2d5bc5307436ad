package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// GeneratedTaskStore defines the interface for the generated-task audit log.
type GeneratedTaskStore interface {
	// Create saves a new generated-task record to the store.
	// Returns ErrInvalidEntity if the owning template does not exist.
	Create(ctx context.Context, g *domain.GeneratedTask) error

	// ListByTemplate retrieves the generation history for a template,
	// most recent due date first.
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*domain.GeneratedTask, error)

	// MarkCompletedByTaskID flags every record linked to the given remote
	// task as completed. Missing records are not an error; the audit layer
	// tolerates drift from the remote side.
	// Returns the number of records updated.
	MarkCompletedByTaskID(ctx context.Context, todoistTaskID string) (int64, error)
}
