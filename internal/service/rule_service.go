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

// RuleService manages auto-complete rules.
type RuleService struct {
	rules  store.RuleStore
	logger *slog.Logger
}

// NewRuleService creates a RuleService with the given dependencies.
func NewRuleService(rules store.RuleStore, logger *slog.Logger) (*RuleService, error) {
	if rules == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RuleService{
		rules:  rules,
		logger: logger.With(slog.String("component", "rule_service")),
	}, nil
}

// ListPending returns all rules that are active and have not yet fired.
func (s *RuleService) ListPending(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
	return s.rules.ListPending(ctx)
}

// CreateOrReactivate creates an auto-complete rule for the given remote task.
// When a rule for the task already exists and has not fired, it is
// reactivated instead; created reports which of the two happened. A rule
// that already fired is terminal and comes back as domain.ErrRuleAlreadyClosed.
func (s *RuleService) CreateOrReactivate(
	ctx context.Context,
	userID uuid.UUID,
	todoistTaskID, taskContent string,
	completeAfterHours int,
) (rule *domain.AutoCompleteRule, created bool, err error) {
	newRule, err := domain.NewAutoCompleteRule(userID, todoistTaskID, taskContent, completeAfterHours)
	if err != nil {
		return nil, false, err
	}

	err = s.rules.Create(ctx, newRule)
	if err == nil {
		return newRule, true, nil
	}
	if !errors.Is(err, store.ErrRuleExists) {
		return nil, false, fmt.Errorf("failed to create rule: %w", err)
	}

	existing, err := s.rules.GetByTaskID(ctx, todoistTaskID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up existing rule: %w", err)
	}

	if err := existing.Reactivate(); err != nil {
		return nil, false, err
	}
	if err := s.rules.Update(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("failed to reactivate rule: %w", err)
	}

	s.logger.Info("reactivated auto-complete rule",
		slog.String("rule_id", existing.ID.String()),
		slog.String("todoist_task_id", todoistTaskID))

	return existing, false, nil
}
