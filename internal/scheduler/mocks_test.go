package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/todoist"
)

// mockTaskAPI is a function-field mock of the TaskAPI interface.
type mockTaskAPI struct {
	GetTaskFn      func(ctx context.Context, taskID string) (*todoist.Task, error)
	CreateTaskFn   func(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error)
	CompleteTaskFn func(ctx context.Context, taskID string) error
}

func (m *mockTaskAPI) GetTask(ctx context.Context, taskID string) (*todoist.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, taskID)
	}
	return &todoist.Task{ID: taskID}, nil
}

func (m *mockTaskAPI) CreateTask(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, params)
	}
	return &todoist.Task{ID: "created", Content: params.Content}, nil
}

func (m *mockTaskAPI) CompleteTask(ctx context.Context, taskID string) error {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, taskID)
	}
	return nil
}

// mockTemplateStore is a function-field mock of store.TemplateStore.
type mockTemplateStore struct {
	CreateFn     func(ctx context.Context, tmpl *domain.TaskTemplate) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.TaskTemplate, error)
	ListFn       func(ctx context.Context) ([]*domain.TaskTemplate, error)
	ListActiveFn func(ctx context.Context) ([]*domain.TaskTemplate, error)
	UpdateFn     func(ctx context.Context, tmpl *domain.TaskTemplate) error
}

func (m *mockTemplateStore) Create(ctx context.Context, tmpl *domain.TaskTemplate) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tmpl)
	}
	return nil
}

func (m *mockTemplateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskTemplate, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTemplateStore) List(ctx context.Context) ([]*domain.TaskTemplate, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockTemplateStore) ListActive(ctx context.Context) ([]*domain.TaskTemplate, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockTemplateStore) Update(ctx context.Context, tmpl *domain.TaskTemplate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tmpl)
	}
	return nil
}

// mockRuleStore is a function-field mock of store.RuleStore.
type mockRuleStore struct {
	CreateFn      func(ctx context.Context, rule *domain.AutoCompleteRule) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.AutoCompleteRule, error)
	GetByTaskIDFn func(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error)
	ListPendingFn func(ctx context.Context) ([]*domain.AutoCompleteRule, error)
	UpdateFn      func(ctx context.Context, rule *domain.AutoCompleteRule) error
}

func (m *mockRuleStore) Create(ctx context.Context, rule *domain.AutoCompleteRule) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rule)
	}
	return nil
}

func (m *mockRuleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AutoCompleteRule, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRuleStore) GetByTaskID(ctx context.Context, todoistTaskID string) (*domain.AutoCompleteRule, error) {
	if m.GetByTaskIDFn != nil {
		return m.GetByTaskIDFn(ctx, todoistTaskID)
	}
	return nil, nil
}

func (m *mockRuleStore) ListPending(ctx context.Context) ([]*domain.AutoCompleteRule, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, nil
}

func (m *mockRuleStore) Update(ctx context.Context, rule *domain.AutoCompleteRule) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, rule)
	}
	return nil
}

// mockGeneratedTaskStore is a function-field mock of store.GeneratedTaskStore.
type mockGeneratedTaskStore struct {
	CreateFn                func(ctx context.Context, g *domain.GeneratedTask) error
	ListByTemplateFn        func(ctx context.Context, templateID uuid.UUID) ([]*domain.GeneratedTask, error)
	MarkCompletedByTaskIDFn func(ctx context.Context, todoistTaskID string) (int64, error)
}

func (m *mockGeneratedTaskStore) Create(ctx context.Context, g *domain.GeneratedTask) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *mockGeneratedTaskStore) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*domain.GeneratedTask, error) {
	if m.ListByTemplateFn != nil {
		return m.ListByTemplateFn(ctx, templateID)
	}
	return nil, nil
}

func (m *mockGeneratedTaskStore) MarkCompletedByTaskID(ctx context.Context, todoistTaskID string) (int64, error) {
	if m.MarkCompletedByTaskIDFn != nil {
		return m.MarkCompletedByTaskIDFn(ctx, todoistTaskID)
	}
	return 0, nil
}

// mockWatcherStore is a function-field mock of store.WatcherStore.
type mockWatcherStore struct {
	CreateFn     func(ctx context.Context, watcher *domain.TaskWatcher) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.TaskWatcher, error)
	ListByTaskFn func(ctx context.Context, todoistTaskID string) ([]*domain.TaskWatcher, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWatcherStore) Create(ctx context.Context, watcher *domain.TaskWatcher) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, watcher)
	}
	return nil
}

func (m *mockWatcherStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskWatcher, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockWatcherStore) ListByTask(ctx context.Context, todoistTaskID string) ([]*domain.TaskWatcher, error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, todoistTaskID)
	}
	return nil, nil
}

func (m *mockWatcherStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// mockNotificationStore is a function-field mock of store.NotificationStore.
type mockNotificationStore struct {
	CreateFn           func(ctx context.Context, n *domain.Notification) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUserFn       func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	ListUnreadByUserFn func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	UpdateFn           func(ctx context.Context, n *domain.Notification) error
	MarkAllReadFn      func(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error)
}

func (m *mockNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationStore) ListUnreadByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if m.ListUnreadByUserFn != nil {
		return m.ListUnreadByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotificationStore) Update(ctx context.Context, n *domain.Notification) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID, readAt)
	}
	return 0, nil
}
