package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Watcher validation errors
var (
	ErrEmptyWatcherID     = errors.New("watcher ID cannot be empty")
	ErrEmptyWatcherTaskID = errors.New("watcher task ID cannot be empty")
	ErrEmptyWatcherUser   = errors.New("watcher user cannot be empty")
	ErrEmptyWatcherAdder  = errors.New("watcher adder cannot be empty")
)

// TaskWatcher registers a user to receive notifications about a remote task.
// The remote service supports only one assignee per task, so additional
// interested users are tracked locally. The (TodoistTaskID, WatcherID) pair
// is unique.
type TaskWatcher struct {
	ID               uuid.UUID `json:"id"`
	TodoistTaskID    string    `json:"todoist_task_id"`
	TaskContent      string    `json:"task_content"` // cached for display
	WatcherID        uuid.UUID `json:"watcher_id"`
	AddedBy          uuid.UUID `json:"added_by"`
	AddedAt          time.Time `json:"added_at"`
	NotifyOnUpdate   bool      `json:"notify_on_update"`
	NotifyOnComplete bool      `json:"notify_on_complete"`
	NotifyOnOverdue  bool      `json:"notify_on_overdue"`
}

// NewTaskWatcher creates a new watcher registration with all notification
// flags enabled. Returns an error if validation fails.
func NewTaskWatcher(
	todoistTaskID, taskContent string,
	watcherID, addedBy uuid.UUID,
) (*TaskWatcher, error) {
	w := &TaskWatcher{
		ID:               uuid.New(),
		TodoistTaskID:    todoistTaskID,
		TaskContent:      taskContent,
		WatcherID:        watcherID,
		AddedBy:          addedBy,
		AddedAt:          time.Now().UTC(),
		NotifyOnUpdate:   true,
		NotifyOnComplete: true,
		NotifyOnOverdue:  true,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the TaskWatcher has valid data.
// Returns an error if any field fails validation.
func (w *TaskWatcher) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWatcherID
	}

	if w.TodoistTaskID == "" {
		return ErrEmptyWatcherTaskID
	}

	if w.WatcherID == uuid.Nil {
		return ErrEmptyWatcherUser
	}

	if w.AddedBy == uuid.Nil {
		return ErrEmptyWatcherAdder
	}

	return nil
}

// RemovableBy reports whether the given user may remove this watcher
// registration: only the watcher themselves or the user who added them.
func (w *TaskWatcher) RemovableBy(userID uuid.UUID) bool {
	return userID == w.WatcherID || userID == w.AddedBy
}
