package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Template validation errors
var (
	ErrEmptyTemplateID      = errors.New("template ID cannot be empty")
	ErrEmptyTemplateName    = errors.New("template name cannot be empty")
	ErrEmptyContentTemplate = errors.New("content template cannot be empty")
	ErrEmptyTemplateOwner   = errors.New("template owner cannot be empty")
	ErrInvalidPriority      = errors.New("priority must be between 1 and 4")
)

// TaskTemplate describes how to periodically materialize a new remote task.
// ContentTemplate and DescriptionTemplate are format strings with {date},
// {month}, {day} and {year} placeholders, substituted from the computed due
// date at generation time.
type TaskTemplate struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	ContentTemplate     string     `json:"content_template"`
	DescriptionTemplate string     `json:"description_template,omitempty"`
	ProjectID           string     `json:"project_id,omitempty"` // Todoist project; empty means Inbox
	Frequency           Frequency  `json:"frequency"`
	Priority            int        `json:"priority"` // 1 (low) to 4 (urgent)
	Labels              string     `json:"labels,omitempty"` // comma-separated label names
	AutoComplete        bool       `json:"auto_complete"`
	IsActive            bool       `json:"is_active"`
	CreatedBy           uuid.UUID  `json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	LastGenerated       *time.Time `json:"last_generated,omitempty"`
}

// NewTaskTemplate creates a new active TaskTemplate owned by the given user.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTaskTemplate(
	createdBy uuid.UUID,
	name, contentTemplate string,
	frequency Frequency,
) (*TaskTemplate, error) {
	tmpl := &TaskTemplate{
		ID:              uuid.New(),
		Name:            name,
		ContentTemplate: contentTemplate,
		Frequency:       frequency,
		Priority:        1,
		IsActive:        true,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Validate checks if the TaskTemplate has valid data.
// Returns an error if any field fails validation.
func (t *TaskTemplate) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTemplateID
	}

	if t.Name == "" {
		return ErrEmptyTemplateName
	}

	if t.ContentTemplate == "" {
		return ErrEmptyContentTemplate
	}

	if !t.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, t.Frequency)
	}

	if t.Priority < 1 || t.Priority > 4 {
		return ErrInvalidPriority
	}

	if t.CreatedBy == uuid.Nil {
		return ErrEmptyTemplateOwner
	}

	return nil
}

// LabelList splits the comma-separated Labels field into trimmed label names.
// Returns nil when no labels are set.
func (t *TaskTemplate) LabelList() []string {
	if t.Labels == "" {
		return nil
	}

	parts := strings.Split(t.Labels, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if label := strings.TrimSpace(p); label != "" {
			labels = append(labels, label)
		}
	}

	if len(labels) == 0 {
		return nil
	}
	return labels
}

// ShouldGenerate reports whether the template is due for a new generation at
// the given time. A template that has never generated is always eligible;
// otherwise the elapsed time since LastGenerated must meet the cadence offset.
// Inactive templates are never eligible.
func (t *TaskTemplate) ShouldGenerate(now time.Time) bool {
	if !t.IsActive || !t.Frequency.Valid() {
		return false
	}

	if t.LastGenerated == nil {
		return true
	}

	return now.Sub(*t.LastGenerated) >= t.Frequency.Offset()
}

// NextDueDate returns the due date for a task generated at the given time:
// now plus the cadence offset.
func (t *TaskTemplate) NextDueDate(now time.Time) time.Time {
	return now.Add(t.Frequency.Offset())
}

// MarkGenerated advances LastGenerated to the given time. The timestamp only
// moves forward; a stale caller cannot regress it.
func (t *TaskTemplate) MarkGenerated(now time.Time) {
	if t.LastGenerated != nil && !now.After(*t.LastGenerated) {
		return
	}

	ts := now.UTC()
	t.LastGenerated = &ts
	t.UpdatedAt = time.Now().UTC()
}

// RenderContent renders the content template against the given due date.
func (t *TaskTemplate) RenderContent(due time.Time) string {
	return RenderTemplate(t.ContentTemplate, due)
}

// RenderDescription renders the description template against the given due
// date. Returns "" when the template has no description.
func (t *TaskTemplate) RenderDescription(due time.Time) string {
	if t.DescriptionTemplate == "" {
		return ""
	}
	return RenderTemplate(t.DescriptionTemplate, due)
}

// RenderTemplate substitutes the {date}, {month}, {day} and {year}
// placeholders in format with values derived from the due date:
// {date} is YYYY-MM-DD, {month} the full month name, {day} the zero-padded
// day of month, and {year} the four-digit year. Unknown placeholders are
// left untouched.
func RenderTemplate(format string, due time.Time) string {
	r := strings.NewReplacer(
		"{date}", due.Format("2006-01-02"),
		"{month}", due.Month().String(),
		"{day}", fmt.Sprintf("%02d", due.Day()),
		"{year}", fmt.Sprintf("%04d", due.Year()),
	)
	return r.Replace(format)
}
