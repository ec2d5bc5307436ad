package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// WatcherStore defines the interface for task watcher persistence.
type WatcherStore interface {
	// Create saves a new watcher registration to the store.
	// Returns ErrWatcherExists if the user is already watching the task.
	// Returns validation errors from the domain TaskWatcher if data is invalid.
	Create(ctx context.Context, watcher *domain.TaskWatcher) error

	// GetByID retrieves a watcher registration by its unique ID.
	// Returns ErrWatcherNotFound if the registration does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskWatcher, error)

	// ListByTask retrieves all watcher registrations for the given remote task.
	ListByTask(ctx context.Context, todoistTaskID string) ([]*domain.TaskWatcher, error)

	// Delete removes a watcher registration.
	// Returns ErrWatcherNotFound if the registration does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
