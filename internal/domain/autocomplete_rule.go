package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rule validation errors
var (
	ErrEmptyRuleID       = errors.New("rule ID cannot be empty")
	ErrEmptyRuleTaskID   = errors.New("rule task ID cannot be empty")
	ErrEmptyRuleOwner    = errors.New("rule owner cannot be empty")
	ErrNegativeGrace     = errors.New("grace period cannot be negative")
	ErrRuleAlreadyClosed = errors.New("rule is already completed")
)

// AutoCompleteRule closes a remote task automatically once its due time plus
// a grace period has passed. Each remote task has at most one rule. Once the
// task is closed the rule is terminal: CompletedAt is set and IsActive is
// false, permanently.
type AutoCompleteRule struct {
	ID                 uuid.UUID  `json:"id"`
	TodoistTaskID      string     `json:"todoist_task_id"`
	TaskContent        string     `json:"task_content"` // cached for display, may drift from the remote task
	CompleteAfterHours int        `json:"complete_after_hours"`
	IsActive           bool       `json:"is_active"`
	CreatedBy          uuid.UUID  `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// NewAutoCompleteRule creates a new active rule for the given remote task,
// owned by the given user. Returns an error if validation fails.
func NewAutoCompleteRule(
	createdBy uuid.UUID,
	todoistTaskID, taskContent string,
	completeAfterHours int,
) (*AutoCompleteRule, error) {
	rule := &AutoCompleteRule{
		ID:                 uuid.New(),
		TodoistTaskID:      todoistTaskID,
		TaskContent:        taskContent,
		CompleteAfterHours: completeAfterHours,
		IsActive:           true,
		CreatedBy:          createdBy,
		CreatedAt:          time.Now().UTC(),
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return rule, nil
}

// Validate checks if the AutoCompleteRule has valid data.
// Returns an error if any field fails validation.
func (r *AutoCompleteRule) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRuleID
	}

	if r.TodoistTaskID == "" {
		return ErrEmptyRuleTaskID
	}

	if r.CompleteAfterHours < 0 {
		return ErrNegativeGrace
	}

	if r.CreatedBy == uuid.Nil {
		return ErrEmptyRuleOwner
	}

	return nil
}

// GracePeriod returns the grace period as a duration.
func (r *AutoCompleteRule) GracePeriod() time.Duration {
	return time.Duration(r.CompleteAfterHours) * time.Hour
}

// Deadline returns the moment the rule becomes eligible to close the task:
// the task's due time plus the grace period.
func (r *AutoCompleteRule) Deadline(due time.Time) time.Time {
	return due.Add(r.GracePeriod())
}

// Complete transitions the rule to its terminal state: CompletedAt is stamped
// with the given time and IsActive is cleared. Returns ErrRuleAlreadyClosed
// if the rule was already completed; the first completion timestamp is never
// overwritten.
func (r *AutoCompleteRule) Complete(now time.Time) error {
	if r.CompletedAt != nil {
		return ErrRuleAlreadyClosed
	}

	ts := now.UTC()
	r.CompletedAt = &ts
	r.IsActive = false
	return nil
}

// Reactivate re-enables an inactive rule that has not yet fired. Completed
// rules are terminal and cannot be reactivated.
func (r *AutoCompleteRule) Reactivate() error {
	if r.CompletedAt != nil {
		return ErrRuleAlreadyClosed
	}

	r.IsActive = true
	return nil
}
