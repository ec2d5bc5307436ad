package api

import (
	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// CreateTemplateRequest defines the payload for creating a task template.
type CreateTemplateRequest struct {
	Name                string `json:"name"                 validate:"required,max=255"`
	ContentTemplate     string `json:"content_template"     validate:"required,max=500"`
	DescriptionTemplate string `json:"description_template" validate:"max=2000"`
	ProjectID           string `json:"project_id"           validate:"max=50"`
	Frequency           string `json:"frequency"            validate:"required"`
	Priority            int    `json:"priority"             validate:"omitempty,min=1,max=4"`
	Labels              string `json:"labels"               validate:"max=500"`
	AutoComplete        bool   `json:"auto_complete"`
	IsActive            *bool  `json:"is_active"` // defaults to true when omitted
}

// GenerateResponse defines the response for manual template generation.
type GenerateResponse struct {
	Generated *domain.GeneratedTask `json:"generated"`
}

// CreateRuleRequest defines the payload for creating an auto-complete rule.
type CreateRuleRequest struct {
	TodoistTaskID      string `json:"todoist_task_id"      validate:"required,max=50"`
	TaskContent        string `json:"task_content"         validate:"max=500"`
	CompleteAfterHours int    `json:"complete_after_hours" validate:"min=0,max=720"`
}

// RuleResponse defines the response for rule creation; Created distinguishes
// a fresh rule from a reactivated one.
type RuleResponse struct {
	Rule    *domain.AutoCompleteRule `json:"rule"`
	Created bool                     `json:"created"`
}

// AddWatcherRequest defines the payload for adding a task watcher.
type AddWatcherRequest struct {
	TodoistTaskID   string `json:"todoist_task_id"  validate:"required,max=50"`
	TaskContent     string `json:"task_content"     validate:"max=500"`
	WatcherUsername string `json:"watcher_username" validate:"required,max=150"`
}

// WatcherResponse defines the response for watcher creation; Created is false
// when the user was already watching the task.
type WatcherResponse struct {
	Watcher *domain.TaskWatcher `json:"watcher"`
	Created bool                `json:"created"`
}

// NotificationListResponse defines the response for the notification list.
type NotificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// MarkAllReadResponse defines the response for the read-all endpoint.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
