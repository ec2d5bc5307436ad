package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification validation errors
var (
	ErrEmptyNotificationID    = errors.New("notification ID cannot be empty")
	ErrEmptyNotificationUser  = errors.New("notification user cannot be empty")
	ErrEmptyNotificationTitle = errors.New("notification title cannot be empty")
)

// NotificationType classifies what a notification is about.
type NotificationType string

// Known notification types.
const (
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationTaskUpdated   NotificationType = "task_updated"
	NotificationTaskCompleted NotificationType = "task_completed"
	NotificationTaskOverdue   NotificationType = "task_overdue"
	NotificationWatcherAdded  NotificationType = "watcher_added"
	NotificationCommentAdded  NotificationType = "comment_added"
)

// ParseNotificationType converts a string into a NotificationType.
// Returns ErrInvalidNotificationType if the string is not a known type.
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotificationTaskAssigned, NotificationTaskUpdated, NotificationTaskCompleted,
		NotificationTaskOverdue, NotificationWatcherAdded, NotificationCommentAdded:
		return NotificationType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNotificationType, s)
	}
}

// Valid reports whether the notification type is known.
func (t NotificationType) Valid() bool {
	_, err := ParseNotificationType(string(t))
	return err == nil
}

// Notification is an in-app message for a user. There is no push mechanism:
// delivery is the user's next read of their notification list. A notification
// transitions from unread to read exactly once.
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	TodoistTaskID string           `json:"todoist_task_id,omitempty"` // related remote task, if any
	IsRead        bool             `json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
}

// NewNotification creates a new unread notification for the given user.
// todoistTaskID may be empty when the notification is not about a specific
// remote task. Returns an error if validation fails.
func NewNotification(
	userID uuid.UUID,
	typ NotificationType,
	title, message, todoistTaskID string,
) (*Notification, error) {
	n := &Notification{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          typ,
		Title:         title,
		Message:       message,
		TodoistTaskID: todoistTaskID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if n.UserID == uuid.Nil {
		return ErrEmptyNotificationUser
	}

	if !n.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, n.Type)
	}

	if n.Title == "" {
		return ErrEmptyNotificationTitle
	}

	return nil
}

// MarkRead marks the notification as read at the given time. The operation
// is idempotent: calling it on an already-read notification does nothing and
// ReadAt keeps its first-set value.
func (n *Notification) MarkRead(now time.Time) {
	if n.IsRead {
		return
	}

	ts := now.UTC()
	n.IsRead = true
	n.ReadAt = &ts
}
