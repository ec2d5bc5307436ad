package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Generated task validation errors
var (
	ErrEmptyGeneratedID       = errors.New("generated task ID cannot be empty")
	ErrEmptyGeneratedTemplate = errors.New("generated task template cannot be empty")
	ErrEmptyGeneratedTaskID   = errors.New("generated task remote ID cannot be empty")
)

// GeneratedTask is an audit record linking a template to the remote task it
// produced. It exists so the system never re-derives due dates and can report
// generation history; it is not consulted when deciding eligibility.
type GeneratedTask struct {
	ID            uuid.UUID `json:"id"`
	TemplateID    uuid.UUID `json:"template_id"`
	TodoistTaskID string    `json:"todoist_task_id"`
	TaskContent   string    `json:"task_content"`
	DueDate       time.Time `json:"due_date"` // date precision; time component is zeroed
	GeneratedAt   time.Time `json:"generated_at"`
	IsCompleted   bool      `json:"is_completed"`
}

// NewGeneratedTask creates a new audit record for a task produced from the
// given template. The due date is truncated to date precision.
// Returns an error if validation fails.
func NewGeneratedTask(
	templateID uuid.UUID,
	todoistTaskID, taskContent string,
	dueDate time.Time,
) (*GeneratedTask, error) {
	due := dueDate.UTC()
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

	g := &GeneratedTask{
		ID:            uuid.New(),
		TemplateID:    templateID,
		TodoistTaskID: todoistTaskID,
		TaskContent:   taskContent,
		DueDate:       due,
		GeneratedAt:   time.Now().UTC(),
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate checks if the GeneratedTask has valid data.
// Returns an error if any field fails validation.
func (g *GeneratedTask) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGeneratedID
	}

	if g.TemplateID == uuid.Nil {
		return ErrEmptyGeneratedTemplate
	}

	if g.TodoistTaskID == "" {
		return ErrEmptyGeneratedTaskID
	}

	return nil
}
