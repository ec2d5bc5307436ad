package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewNotification(t *testing.T) {
	userID := uuid.New()

	n, err := NewNotification(userID, NotificationWatcherAdded, "Added as watcher", "details", "12345")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if n.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if n.IsRead {
		t.Error("Expected new notification to be unread")
	}

	if n.ReadAt != nil {
		t.Error("Expected nil ReadAt on a new notification")
	}

	// A notification without a related task is fine
	if _, err := NewNotification(userID, NotificationTaskCompleted, "title", "msg", ""); err != nil {
		t.Errorf("Expected no error for empty task ID, got %v", err)
	}

	// Invalid inputs
	if _, err := NewNotification(uuid.Nil, NotificationTaskCompleted, "title", "msg", ""); err != ErrEmptyNotificationUser {
		t.Errorf("Expected error %v, got %v", ErrEmptyNotificationUser, err)
	}

	if _, err := NewNotification(userID, NotificationType("pigeon"), "title", "msg", ""); !errors.Is(err, ErrInvalidNotificationType) {
		t.Errorf("Expected ErrInvalidNotificationType, got %v", err)
	}

	if _, err := NewNotification(userID, NotificationTaskCompleted, "", "msg", ""); err != ErrEmptyNotificationTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyNotificationTitle, err)
	}
}

func TestParseNotificationType(t *testing.T) {
	known := []NotificationType{
		NotificationTaskAssigned,
		NotificationTaskUpdated,
		NotificationTaskCompleted,
		NotificationTaskOverdue,
		NotificationWatcherAdded,
		NotificationCommentAdded,
	}

	for _, typ := range known {
		parsed, err := ParseNotificationType(string(typ))
		if err != nil {
			t.Errorf("ParseNotificationType(%q) returned error: %v", typ, err)
		}
		if parsed != typ {
			t.Errorf("ParseNotificationType(%q) = %q, want %q", typ, parsed, typ)
		}
	}

	if _, err := ParseNotificationType("unknown"); !errors.Is(err, ErrInvalidNotificationType) {
		t.Errorf("Expected ErrInvalidNotificationType, got %v", err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	n, err := NewNotification(uuid.New(), NotificationTaskCompleted, "Task completed", "msg", "12345")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	n.MarkRead(first)

	if !n.IsRead {
		t.Error("Expected notification to be read")
	}
	if n.ReadAt == nil || !n.ReadAt.Equal(first) {
		t.Fatalf("Expected ReadAt %v, got %v", first, n.ReadAt)
	}

	// Marking again keeps the first-set timestamp
	n.MarkRead(first.Add(time.Hour))
	if !n.ReadAt.Equal(first) {
		t.Errorf("Expected ReadAt to stay at %v, got %v", first, n.ReadAt)
	}
}
