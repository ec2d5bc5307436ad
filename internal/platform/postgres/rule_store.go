package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/logger"
	"github.com/avelldro/taskward/internal/store"
)

const ruleColumns = `id, todoist_task_id, task_content, complete_after_hours,
	is_active, created_by, created_at, completed_at`

// PostgresRuleStore implements the store.RuleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRuleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRuleStore creates a new PostgreSQL implementation of the
// RuleStore interface. If logger is nil, a default logger will be used.
func NewPostgresRuleStore(db store.DBTX, logger *slog.Logger) *PostgresRuleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRuleStore{
		db:     db,
		logger: logger.With(slog.String("component", "rule_store")),
	}
}

// Ensure PostgresRuleStore implements store.RuleStore interface
var _ store.RuleStore = (*PostgresRuleStore)(nil)

// Create implements store.RuleStore.Create
// Returns store.ErrRuleExists when the remote task already has a rule.
func (s *PostgresRuleStore) Create(ctx context.Context, rule *domain.AutoCompleteRule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rule.Validate(); err != nil {
		log.Warn("rule validation failed during create",
			slog.String("error", err.Error()),
			slog.String("rule_id", rule.ID.String()))
		return err
	}

	query := `
		INSERT INTO autocomplete_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rule.ID,
		rule.TodoistTaskID,
		rule.TaskContent,
		rule.CompleteAfterHours,
		rule.IsActive,
		rule.CreatedBy,
		rule.CreatedAt,
		rule.CompletedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrRuleExists
		}
		log.Error("failed to create rule",
			slog.String("error", err.Error()),
			slog.String("rule_id", rule.ID.String()))
		return err
	}

	log.Info("rule created successfully",
		slog.String("rule_id", rule.ID.String()),
		slog.String("todoist_task_id", rule.TodoistTaskID))
	return nil
}

// GetByID implements store.RuleStore.GetByID
// Returns store.ErrRuleNotFound if the rule does not exist.
func (s *PostgresRuleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AutoCompleteRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM autocomplete_rules WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByTaskID implements store.RuleStore.GetByTaskID
// Returns store.ErrRuleNotFound if no rule exists for the task.
func (s *PostgresRuleStore) GetByTaskID(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM autocomplete_rules WHERE todoist_task_id = $1`
	return s.getOne(ctx, query, todoistTaskID)
}

func (s *PostgresRuleStore) getOne(ctx context.Context, query string, arg any) (*domain.AutoCompleteRule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rule, err := scanRule(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRuleNotFound
		}
		log.Error("failed to get rule", slog.String("error", err.Error()))
		return nil, err
	}

	return rule, nil
}

// ListPending implements store.RuleStore.ListPending
func (s *PostgresRuleStore) ListPending(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + ruleColumns + `
		FROM autocomplete_rules
		WHERE is_active AND completed_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list pending rules", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rules []*domain.AutoCompleteRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Update implements store.RuleStore.Update
// Returns store.ErrRuleNotFound if the rule does not exist.
func (s *PostgresRuleStore) Update(ctx context.Context, rule *domain.AutoCompleteRule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE autocomplete_rules
		SET task_content = $2, complete_after_hours = $3, is_active = $4, completed_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		rule.ID,
		rule.TaskContent,
		rule.CompleteAfterHours,
		rule.IsActive,
		rule.CompletedAt,
	)
	if err != nil {
		log.Error("failed to update rule",
			slog.String("error", err.Error()),
			slog.String("rule_id", rule.ID.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrRuleNotFound
	}

	return nil
}

func scanRule(row rowScanner) (*domain.AutoCompleteRule, error) {
	var rule domain.AutoCompleteRule
	var completedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.TodoistTaskID,
		&rule.TaskContent,
		&rule.CompleteAfterHours,
		&rule.IsActive,
		&rule.CreatedBy,
		&rule.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		rule.CompletedAt = &t
	}

	return &rule, nil
}
