package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/store"
)

func newTestRuleService(t *testing.T, rules *mockRuleStore) *RuleService {
	t.Helper()

	svc, err := NewRuleService(rules, nil)
	require.NoError(t, err)
	return svc
}

func TestCreateOrReactivateCreatesFreshRule(t *testing.T) {
	userID := uuid.New()

	var stored *domain.AutoCompleteRule
	rules := &mockRuleStore{
		CreateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			stored = rule
			return nil
		},
	}

	svc := newTestRuleService(t, rules)

	rule, created, err := svc.CreateOrReactivate(context.Background(), userID, "12345", "Take out trash", 2)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, stored)
	assert.Equal(t, stored, rule)
	assert.Equal(t, "12345", rule.TodoistTaskID)
	assert.Equal(t, 2, rule.CompleteAfterHours)
	assert.Equal(t, userID, rule.CreatedBy)
	assert.True(t, rule.IsActive)
	assert.Nil(t, rule.CompletedAt)
}

func TestCreateOrReactivateReactivatesExistingRule(t *testing.T) {
	existing, err := domain.NewAutoCompleteRule(uuid.New(), "12345", "Take out trash", 2)
	require.NoError(t, err)
	existing.IsActive = false

	updateCalls := 0
	rules := &mockRuleStore{
		CreateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			return store.ErrRuleExists
		},
		GetByTaskIDFn: func(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error) {
			assert.Equal(t, "12345", todoistTaskID)
			return existing, nil
		},
		UpdateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			updateCalls++
			assert.True(t, rule.IsActive)
			return nil
		},
	}

	svc := newTestRuleService(t, rules)

	rule, created, err := svc.CreateOrReactivate(context.Background(), uuid.New(), "12345", "Take out trash", 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, rule)
	assert.True(t, rule.IsActive)
	assert.Equal(t, 1, updateCalls)
}

func TestCreateOrReactivateFiredRuleIsTerminal(t *testing.T) {
	existing, err := domain.NewAutoCompleteRule(uuid.New(), "12345", "Take out trash", 2)
	require.NoError(t, err)
	require.NoError(t, existing.Complete(time.Now()))

	rules := &mockRuleStore{
		CreateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			return store.ErrRuleExists
		},
		GetByTaskIDFn: func(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error) {
			return existing, nil
		},
		UpdateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			t.Fatal("Update should not be called for a fired rule")
			return nil
		},
	}

	svc := newTestRuleService(t, rules)

	_, _, err = svc.CreateOrReactivate(context.Background(), uuid.New(), "12345", "Take out trash", 2)
	assert.ErrorIs(t, err, domain.ErrRuleAlreadyClosed)
}

func TestCreateOrReactivateRejectsInvalidRule(t *testing.T) {
	rules := &mockRuleStore{
		CreateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			t.Fatal("Create should not be called for an invalid rule")
			return nil
		},
	}

	svc := newTestRuleService(t, rules)

	_, _, err := svc.CreateOrReactivate(context.Background(), uuid.New(), "12345", "Take out trash", -1)
	assert.ErrorIs(t, err, domain.ErrNegativeGrace)
}
