package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/todoist"
)

// newTestRunner builds a runner over the given mocks with a fixed clock.
func newTestRunner(
	t *testing.T,
	client *mockTaskAPI,
	templates *mockTemplateStore,
	rules *mockRuleStore,
	generated *mockGeneratedTaskStore,
	watchers *mockWatcherStore,
	notifications *mockNotificationStore,
	now time.Time,
) *Runner {
	t.Helper()

	runner, err := NewRunner(client, templates, rules, generated, watchers, notifications, nil)
	require.NoError(t, err)

	runner.now = func() time.Time { return now }
	return runner
}

func mustNewRule(t *testing.T, taskID string, graceHours int) *domain.AutoCompleteRule {
	t.Helper()

	rule, err := domain.NewAutoCompleteRule(uuid.New(), taskID, "task "+taskID, graceHours)
	require.NoError(t, err)
	return rule
}

func TestNewRunnerNilDependencies(t *testing.T) {
	_, err := NewRunner(nil, &mockTemplateStore{}, &mockRuleStore{},
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, nil)
	assert.ErrorIs(t, err, ErrNilClient)

	_, err = NewRunner(&mockTaskAPI{}, nil, &mockRuleStore{},
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, nil)
	assert.ErrorIs(t, err, ErrNilStore)
}

func TestRunAutoCompleteClosesOverdueTask(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	rule := mustNewRule(t, "101", 2)

	var closedTasks []string
	var updatedRule *domain.AutoCompleteRule
	var markedTaskID string

	client := &mockTaskAPI{
		GetTaskFn: func(ctx context.Context, taskID string) (*todoist.Task, error) {
			// Due 3 hours ago, 2 hour grace: past deadline.
			return &todoist.Task{
				ID:  taskID,
				Due: &todoist.Due{Date: now.Add(-3 * time.Hour).Format("2006-01-02T15:04:05")},
			}, nil
		},
		CompleteTaskFn: func(ctx context.Context, taskID string) error {
			closedTasks = append(closedTasks, taskID)
			return nil
		},
	}
	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			return []*domain.AutoCompleteRule{rule}, nil
		},
		UpdateFn: func(ctx context.Context, r *domain.AutoCompleteRule) error {
			updatedRule = r
			return nil
		},
	}
	generated := &mockGeneratedTaskStore{
		MarkCompletedByTaskIDFn: func(ctx context.Context, todoistTaskID string) (int64, error) {
			markedTaskID = todoistTaskID
			return 1, nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules, generated,
		&mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunAutoComplete(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Report{Processed: 1, Succeeded: 1, Failed: 0}, report)
	assert.Equal(t, []string{"101"}, closedTasks, "remote task should be closed exactly once")

	require.NotNil(t, updatedRule)
	assert.False(t, updatedRule.IsActive)
	require.NotNil(t, updatedRule.CompletedAt)
	assert.True(t, updatedRule.CompletedAt.Equal(now))

	assert.Equal(t, "101", markedTaskID)
}

func TestRunAutoCompleteSkipsNotYetDue(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	rule := mustNewRule(t, "101", 4)

	completeCalled := false
	client := &mockTaskAPI{
		GetTaskFn: func(ctx context.Context, taskID string) (*todoist.Task, error) {
			// Due 1 hour ago with a 4 hour grace: within the window.
			return &todoist.Task{
				ID:  taskID,
				Due: &todoist.Due{Date: now.Add(-time.Hour).Format("2006-01-02T15:04:05")},
			}, nil
		},
		CompleteTaskFn: func(ctx context.Context, taskID string) error {
			completeCalled = true
			return nil
		},
	}
	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			return []*domain.AutoCompleteRule{rule}, nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules,
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunAutoComplete(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Report{Processed: 1, Succeeded: 0, Failed: 0}, report)
	assert.False(t, completeCalled, "task inside its grace window must not be closed")
	assert.True(t, rule.IsActive, "rule must stay pending")
}

func TestRunAutoCompleteSkipsTaskWithoutDueDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	rule := mustNewRule(t, "101", 0)

	client := &mockTaskAPI{
		GetTaskFn: func(ctx context.Context, taskID string) (*todoist.Task, error) {
			return &todoist.Task{ID: taskID}, nil
		},
		CompleteTaskFn: func(ctx context.Context, taskID string) error {
			t.Fatal("CompleteTask must not be called for a task without a due date")
			return nil
		},
	}
	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			return []*domain.AutoCompleteRule{rule}, nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules,
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunAutoComplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Processed: 1, Succeeded: 0, Failed: 0}, report)
}

func TestRunAutoCompleteIsolatesFailures(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	failing := mustNewRule(t, "bad", 0)
	healthy := mustNewRule(t, "good", 0)

	var closedTasks []string
	client := &mockTaskAPI{
		GetTaskFn: func(ctx context.Context, taskID string) (*todoist.Task, error) {
			if taskID == "bad" {
				return nil, errors.New("remote service unavailable")
			}
			return &todoist.Task{
				ID:  taskID,
				Due: &todoist.Due{Date: now.Add(-time.Hour).Format("2006-01-02T15:04:05")},
			}, nil
		},
		CompleteTaskFn: func(ctx context.Context, taskID string) error {
			closedTasks = append(closedTasks, taskID)
			return nil
		},
	}
	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			return []*domain.AutoCompleteRule{failing, healthy}, nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules,
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunAutoComplete(context.Background())
	require.NoError(t, err, "per-rule failures must not fail the scan")

	assert.Equal(t, Report{Processed: 2, Succeeded: 1, Failed: 1}, report)
	assert.Equal(t, []string{"good"}, closedTasks, "healthy rule must still be applied")
}

func TestRunAutoCompleteNotifiesWatchers(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	rule := mustNewRule(t, "101", 0)

	optedIn, err := domain.NewTaskWatcher("101", "task 101", uuid.New(), uuid.New())
	require.NoError(t, err)
	optedOut, err := domain.NewTaskWatcher("101", "task 101", uuid.New(), uuid.New())
	require.NoError(t, err)
	optedOut.NotifyOnComplete = false

	var created []*domain.Notification
	client := &mockTaskAPI{
		GetTaskFn: func(ctx context.Context, taskID string) (*todoist.Task, error) {
			return &todoist.Task{
				ID:  taskID,
				Due: &todoist.Due{Date: now.Add(-time.Hour).Format("2006-01-02T15:04:05")},
			}, nil
		},
	}
	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			return []*domain.AutoCompleteRule{rule}, nil
		},
	}
	watchers := &mockWatcherStore{
		ListByTaskFn: func(ctx context.Context, todoistTaskID string) ([]*domain.TaskWatcher, error) {
			return []*domain.TaskWatcher{optedIn, optedOut}, nil
		},
	}
	notifications := &mockNotificationStore{
		CreateFn: func(ctx context.Context, n *domain.Notification) error {
			created = append(created, n)
			return nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules,
		&mockGeneratedTaskStore{}, watchers, notifications, now)

	_, err = runner.RunAutoComplete(context.Background())
	require.NoError(t, err)

	require.Len(t, created, 1, "only opted-in watchers receive notifications")
	assert.Equal(t, optedIn.WatcherID, created[0].UserID)
	assert.Equal(t, domain.NotificationTaskCompleted, created[0].Type)
	assert.Equal(t, "101", created[0].TodoistTaskID)
}

func TestRunGenerationCreatesTask(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tmpl, err := domain.NewTaskTemplate(uuid.New(), "Weekly review", "Review week of {date}", domain.FrequencyWeekly)
	require.NoError(t, err)

	var createdParams todoist.CreateTaskParams
	var recorded *domain.GeneratedTask
	var updatedTemplate *domain.TaskTemplate

	client := &mockTaskAPI{
		CreateTaskFn: func(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error) {
			createdParams = params
			return &todoist.Task{ID: "900", Content: params.Content}, nil
		},
	}
	templates := &mockTemplateStore{
		ListActiveFn: func(ctx context.Context) ([]*domain.TaskTemplate, error) {
			return []*domain.TaskTemplate{tmpl}, nil
		},
		UpdateFn: func(ctx context.Context, updated *domain.TaskTemplate) error {
			updatedTemplate = updated
			return nil
		},
	}
	generated := &mockGeneratedTaskStore{
		CreateFn: func(ctx context.Context, g *domain.GeneratedTask) error {
			recorded = g
			return nil
		},
	}

	runner := newTestRunner(t, client, templates, &mockRuleStore{}, generated,
		&mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunGeneration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Processed: 1, Succeeded: 1, Failed: 0}, report)

	// Due date is one weekly offset out, rendered into the content.
	due := now.Add(7 * 24 * time.Hour)
	assert.Equal(t, "Review week of "+due.Format("2006-01-02"), createdParams.Content)
	assert.Equal(t, due.Format("2006-01-02"), createdParams.DueDate)

	require.NotNil(t, recorded)
	assert.Equal(t, tmpl.ID, recorded.TemplateID)
	assert.Equal(t, "900", recorded.TodoistTaskID)

	require.NotNil(t, updatedTemplate)
	require.NotNil(t, updatedTemplate.LastGenerated)
	assert.True(t, updatedTemplate.LastGenerated.Equal(now))
}

func TestRunGenerationSkipsIneligibleTemplates(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tmpl, err := domain.NewTaskTemplate(uuid.New(), "Daily standup", "Standup {date}", domain.FrequencyDaily)
	require.NoError(t, err)
	recent := now.Add(-time.Hour)
	tmpl.LastGenerated = &recent

	client := &mockTaskAPI{
		CreateTaskFn: func(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error) {
			t.Fatal("CreateTask must not be called for an ineligible template")
			return nil, nil
		},
	}
	templates := &mockTemplateStore{
		ListActiveFn: func(ctx context.Context) ([]*domain.TaskTemplate, error) {
			return []*domain.TaskTemplate{tmpl}, nil
		},
	}

	runner := newTestRunner(t, client, templates, &mockRuleStore{},
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunGeneration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Processed: 1, Succeeded: 0, Failed: 0}, report)
}

func TestRunGenerationIsolatesFailures(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	failing, err := domain.NewTaskTemplate(uuid.New(), "Broken", "Broken {date}", domain.FrequencyDaily)
	require.NoError(t, err)
	healthy, err := domain.NewTaskTemplate(uuid.New(), "Healthy", "Healthy {date}", domain.FrequencyDaily)
	require.NoError(t, err)

	client := &mockTaskAPI{
		CreateTaskFn: func(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error) {
			if params.Content == healthy.RenderContent(now.Add(24*time.Hour)) {
				return &todoist.Task{ID: "901", Content: params.Content}, nil
			}
			return nil, errors.New("remote service unavailable")
		},
	}
	templates := &mockTemplateStore{
		ListActiveFn: func(ctx context.Context) ([]*domain.TaskTemplate, error) {
			return []*domain.TaskTemplate{failing, healthy}, nil
		},
	}

	runner := newTestRunner(t, client, templates, &mockRuleStore{},
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	report, err := runner.RunGeneration(context.Background())
	require.NoError(t, err, "per-template failures must not fail the scan")
	assert.Equal(t, Report{Processed: 2, Succeeded: 1, Failed: 1}, report)

	require.NotNil(t, healthy.LastGenerated, "healthy template must still advance")
	assert.Nil(t, failing.LastGenerated, "failed template must not advance")
}

func TestGenerateSpawnsAutoCompleteRule(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tmpl, err := domain.NewTaskTemplate(uuid.New(), "Trash day", "Take out trash {date}", domain.FrequencyWeekly)
	require.NoError(t, err)
	tmpl.AutoComplete = true

	var createdRule *domain.AutoCompleteRule
	client := &mockTaskAPI{
		CreateTaskFn: func(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error) {
			return &todoist.Task{ID: "902", Content: params.Content}, nil
		},
	}
	rules := &mockRuleStore{
		CreateFn: func(ctx context.Context, rule *domain.AutoCompleteRule) error {
			createdRule = rule
			return nil
		},
	}

	runner := newTestRunner(t, client, &mockTemplateStore{}, rules,
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	_, err = runner.Generate(context.Background(), tmpl)
	require.NoError(t, err)

	require.NotNil(t, createdRule, "auto-complete template must spawn a rule")
	assert.Equal(t, "902", createdRule.TodoistTaskID)
	assert.Equal(t, 0, createdRule.CompleteAfterHours, "spawned rules have zero grace")
	assert.Equal(t, tmpl.CreatedBy, createdRule.CreatedBy)
}

func TestRunModeSelectsScans(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	listPendingCalled := false
	listActiveCalled := false

	rules := &mockRuleStore{
		ListPendingFn: func(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
			listPendingCalled = true
			return nil, nil
		},
	}
	templates := &mockTemplateStore{
		ListActiveFn: func(ctx context.Context) ([]*domain.TaskTemplate, error) {
			listActiveCalled = true
			return nil, nil
		},
	}

	runner := newTestRunner(t, &mockTaskAPI{}, templates, rules,
		&mockGeneratedTaskStore{}, &mockWatcherStore{}, &mockNotificationStore{}, now)

	require.NoError(t, runner.Run(context.Background(), ModeAutoCompleteOnly))
	assert.True(t, listPendingCalled)
	assert.False(t, listActiveCalled)

	listPendingCalled, listActiveCalled = false, false
	require.NoError(t, runner.Run(context.Background(), ModeGenerateOnly))
	assert.False(t, listPendingCalled)
	assert.True(t, listActiveCalled)

	listPendingCalled, listActiveCalled = false, false
	require.NoError(t, runner.Run(context.Background(), ModeBoth))
	assert.True(t, listPendingCalled)
	assert.True(t, listActiveCalled)
}
