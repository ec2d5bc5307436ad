package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/store"
)

// WatcherService manages watcher registrations and the notifications they
// trigger.
type WatcherService struct {
	users         store.UserStore
	watchers      store.WatcherStore
	notifications store.NotificationStore
	logger        *slog.Logger
}

// NewWatcherService creates a WatcherService with the given dependencies.
func NewWatcherService(
	users store.UserStore,
	watchers store.WatcherStore,
	notifications store.NotificationStore,
	logger *slog.Logger,
) (*WatcherService, error) {
	if users == nil || watchers == nil || notifications == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WatcherService{
		users:         users,
		watchers:      watchers,
		notifications: notifications,
		logger:        logger.With(slog.String("component", "watcher_service")),
	}, nil
}

// AddWatcher registers the named user as a watcher of the given remote task.
// Adding a user who is already watching is a no-op: the existing registration
// is returned with created=false and no second notification is sent.
//
// Returns store.ErrUserNotFound when the watcher username is unknown.
func (s *WatcherService) AddWatcher(
	ctx context.Context,
	addedBy uuid.UUID,
	todoistTaskID, taskContent, watcherUsername string,
) (watcher *domain.TaskWatcher, created bool, err error) {
	watcherUser, err := s.users.GetByUsername(ctx, watcherUsername)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up watcher user: %w", err)
	}

	w, err := domain.NewTaskWatcher(todoistTaskID, taskContent, watcherUser.ID, addedBy)
	if err != nil {
		return nil, false, err
	}

	if err := s.watchers.Create(ctx, w); err != nil {
		if errors.Is(err, store.ErrWatcherExists) {
			existing, findErr := s.findRegistration(ctx, todoistTaskID, watcherUser.ID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create watcher: %w", err)
	}

	s.notifyWatcherAdded(ctx, addedBy, w)

	return w, true, nil
}

// findRegistration locates the existing registration for a (task, watcher)
// pair after a duplicate insert was rejected.
func (s *WatcherService) findRegistration(
	ctx context.Context,
	todoistTaskID string,
	watcherID uuid.UUID,
) (*domain.TaskWatcher, error) {
	registrations, err := s.watchers.ListByTask(ctx, todoistTaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchers: %w", err)
	}

	for _, w := range registrations {
		if w.WatcherID == watcherID {
			return w, nil
		}
	}

	return nil, store.ErrWatcherNotFound
}

// notifyWatcherAdded tells the newly added watcher about their registration.
// A notification failure is logged, not propagated; the registration stands.
func (s *WatcherService) notifyWatcherAdded(ctx context.Context, addedBy uuid.UUID, w *domain.TaskWatcher) {
	adderName := "Someone"
	if adder, err := s.users.GetByID(ctx, addedBy); err == nil {
		adderName = adder.Username
	}

	n, err := domain.NewNotification(
		w.WatcherID,
		domain.NotificationWatcherAdded,
		"You were added as a watcher",
		fmt.Sprintf("%s added you as a watcher to: %s", adderName, w.TaskContent),
		w.TodoistTaskID,
	)
	if err != nil {
		s.logger.Error("failed to build watcher-added notification",
			slog.String("watcher_id", w.WatcherID.String()),
			slog.String("error", err.Error()))
		return
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("failed to create watcher-added notification",
			slog.String("watcher_id", w.WatcherID.String()),
			slog.String("error", err.Error()))
	}
}

// RemoveWatcher deletes a watcher registration. Only the watcher themselves
// or the user who added them may remove it; anyone else gets
// ErrWatcherNotRemovable.
func (s *WatcherService) RemoveWatcher(ctx context.Context, requester, watcherID uuid.UUID) error {
	w, err := s.watchers.GetByID(ctx, watcherID)
	if err != nil {
		return fmt.Errorf("failed to look up watcher: %w", err)
	}

	if !w.RemovableBy(requester) {
		return ErrWatcherNotRemovable
	}

	if err := s.watchers.Delete(ctx, watcherID); err != nil {
		return fmt.Errorf("failed to delete watcher: %w", err)
	}

	return nil
}
