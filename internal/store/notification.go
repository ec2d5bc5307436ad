package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// NotificationStore defines the interface for notification persistence.
type NotificationStore interface {
	// Create saves a new notification to the store.
	// Returns validation errors from the domain Notification if data is invalid.
	Create(ctx context.Context, n *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// ListByUser retrieves all notifications for the given user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// ListUnreadByUser retrieves the user's unread notifications, newest
	// first, limited to the given count. A limit of 0 means no limit.
	ListUnreadByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)

	// Update persists changes to an existing notification (read state).
	// Returns ErrNotificationNotFound if the notification does not exist.
	Update(ctx context.Context, n *domain.Notification) error

	// MarkAllRead marks every unread notification belonging to the user as
	// read at the given time. Already-read rows are untouched.
	// Returns the number of notifications updated.
	MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error)
}
