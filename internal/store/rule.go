package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
)

// RuleStore defines the interface for auto-complete rule persistence.
type RuleStore interface {
	// Create saves a new auto-complete rule to the store.
	// Returns ErrRuleExists if a rule for the same remote task already exists.
	// Returns validation errors from the domain AutoCompleteRule if data is invalid.
	Create(ctx context.Context, rule *domain.AutoCompleteRule) error

	// GetByID retrieves a rule by its unique ID.
	// Returns ErrRuleNotFound if the rule does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AutoCompleteRule, error)

	// GetByTaskID retrieves the rule for the given remote task.
	// Returns ErrRuleNotFound if no rule exists for the task.
	GetByTaskID(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error)

	// ListPending retrieves all rules that are active and not yet completed,
	// newest first. The auto-complete scan iterates this set.
	ListPending(ctx context.Context) ([]*domain.AutoCompleteRule, error)

	// Update persists changes to an existing rule.
	// Returns ErrRuleNotFound if the rule does not exist.
	Update(ctx context.Context, rule *domain.AutoCompleteRule) error
}
