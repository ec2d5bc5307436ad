package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/store"
)

// NotificationService manages a user's notification list and read state.
type NotificationService struct {
	notifications store.NotificationStore
	logger        *slog.Logger

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewNotificationService creates a NotificationService with the given
// dependencies.
func NewNotificationService(
	notifications store.NotificationStore,
	logger *slog.Logger,
) (*NotificationService, error) {
	if notifications == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationService{
		notifications: notifications,
		logger:        logger.With(slog.String("component", "notification_service")),
		now:           time.Now,
	}, nil
}

// List returns all of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkRead marks one of the user's notifications as read and returns it.
// The operation is idempotent: marking an already-read notification leaves
// its ReadAt untouched. A notification belonging to another user is reported
// as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	// Users can only touch their own notifications; leak nothing about
	// other users' rows.
	if n.UserID != userID {
		return nil, store.ErrNotificationNotFound
	}

	if n.IsRead {
		return n, nil
	}

	n.MarkRead(s.now())
	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to persist read state: %w", err)
	}

	return n, nil
}

// MarkAllRead marks every unread notification of the user as read.
// Returns the number of notifications updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.notifications.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark all read: %w", err)
	}

	return updated, nil
}
