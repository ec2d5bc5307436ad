package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// TemplateStore defines the interface for task template persistence.
type TemplateStore interface {
	// Create saves a new task template to the store.
	// Returns validation errors from the domain TaskTemplate if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, tmpl *domain.TaskTemplate) error

	// GetByID retrieves a template by its unique ID.
	// Returns ErrTemplateNotFound if the template does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskTemplate, error)

	// List retrieves all templates, newest first.
	List(ctx context.Context) ([]*domain.TaskTemplate, error)

	// ListActive retrieves all active templates, newest first. The generation
	// scan iterates this set.
	ListActive(ctx context.Context) ([]*domain.TaskTemplate, error)

	// Update persists changes to an existing template.
	// Returns ErrTemplateNotFound if the template does not exist.
	Update(ctx context.Context, tmpl *domain.TaskTemplate) error
}
