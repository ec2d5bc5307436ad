package todoist

import (
	"fmt"
	"strings"
	"time"
)

// Project is a Todoist project.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	IsShared   bool   `json:"is_shared,omitempty"`
	IsInboxPrj bool   `json:"is_inbox_project,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Due is a task's due date as returned by the API. Date holds either a bare
// date (2024-03-15) or a datetime (2024-03-15T12:00:00, possibly with a zone
// suffix); which form appears depends on how the task was created.
type Due struct {
	Date        string `json:"date"`
	String      string `json:"string,omitempty"`
	Datetime    string `json:"datetime,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	IsRecurring bool   `json:"is_recurring,omitempty"`
}

// Time parses the due date into a time.Time, accepting both the bare-date
// and datetime forms. Bare dates are interpreted as midnight UTC.
func (d *Due) Time() (time.Time, error) {
	s := d.Date
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is empty")
	}

	if strings.Contains(s, "T") {
		// Datetime form, with or without a zone suffix.
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable due datetime %q: %w", s, err)
		}
		return t, nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable due date %q: %w", s, err)
	}
	return t, nil
}

// Task is a Todoist task.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id,omitempty"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Due         *Due     `json:"due,omitempty"`
	IsCompleted bool     `json:"is_completed,omitempty"`
	CreatorID   string   `json:"creator_id,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Comment is a comment attached to a Todoist task.
type Comment struct {
	ID       string `json:"id"`
	TaskID   string `json:"task_id"`
	Content  string `json:"content"`
	PostedAt string `json:"posted_at,omitempty"`
}

// Label is a Todoist label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ListTasksOptions narrows a task listing. ProjectID restricts to a project;
// Filter is a Todoist filter string (e.g. "today", "overdue", "7 days")
// passed through verbatim to the remote filter language.
type ListTasksOptions struct {
	ProjectID string
	Filter    string
}

// CreateTaskParams describes a task to create. Content is required; all other
// fields are optional. When both DueString and DueDate are set, the
// natural-language DueString wins. Priority 1 is the remote default and is
// not sent on the wire.
type CreateTaskParams struct {
	Content     string
	Description string
	ProjectID   string
	DueString   string // natural language, e.g. "tomorrow"
	DueDate     string // ISO 8601 date, e.g. "2024-03-15"
	Priority    int    // 1 (default) to 4 (urgent)
	Labels      []string
}

// body shapes the wire payload, omitting everything the remote side defaults.
func (p *CreateTaskParams) body() map[string]any {
	data := map[string]any{
		"content": p.Content,
	}

	if p.Description != "" {
		data["description"] = p.Description
	}
	if p.ProjectID != "" {
		data["project_id"] = p.ProjectID
	}
	if p.DueString != "" {
		data["due_string"] = p.DueString
	} else if p.DueDate != "" {
		data["due_date"] = p.DueDate
	}
	if p.Priority > 1 {
		data["priority"] = p.Priority
	}
	if len(p.Labels) > 0 {
		data["labels"] = p.Labels
	}

	return data
}

// UpdateTaskParams describes a partial task update. Only non-zero fields are
// sent on the wire.
type UpdateTaskParams struct {
	Content     string
	Description string
	DueString   string
	DueDate     string
	Priority    int
	Labels      []string
}

func (p *UpdateTaskParams) body() map[string]any {
	data := map[string]any{}

	if p.Content != "" {
		data["content"] = p.Content
	}
	if p.Description != "" {
		data["description"] = p.Description
	}
	if p.DueString != "" {
		data["due_string"] = p.DueString
	} else if p.DueDate != "" {
		data["due_date"] = p.DueDate
	}
	if p.Priority > 0 {
		data["priority"] = p.Priority
	}
	if len(p.Labels) > 0 {
		data["labels"] = p.Labels
	}

	return data
}
