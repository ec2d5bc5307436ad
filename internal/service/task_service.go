package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/todoist"
	"github.com/avelldro/taskward/internal/store"
)

// dashboard list limits, matching what the UI renders
const (
	dashboardTemplateLimit     = 5
	dashboardNotificationLimit = 10
)

// TodoistAPI is the slice of the remote task service the task service
// depends on. *todoist.Client satisfies it; tests substitute a mock.
type TodoistAPI interface {
	GetTasks(ctx context.Context, opts todoist.ListTasksOptions) ([]todoist.Task, error)
	GetProjects(ctx context.Context) ([]todoist.Project, error)
	CompleteTask(ctx context.Context, taskID string) error
}

// DashboardFilter selects which remote tasks the dashboard shows.
type DashboardFilter string

// Supported dashboard filters.
const (
	FilterAll     DashboardFilter = "all"
	FilterToday   DashboardFilter = "today"
	FilterOverdue DashboardFilter = "overdue"
	FilterWeek    DashboardFilter = "week"
)

// ParseDashboardFilter converts a query-string value into a DashboardFilter,
// defaulting to FilterAll for empty or unknown values.
func ParseDashboardFilter(s string) DashboardFilter {
	switch DashboardFilter(s) {
	case FilterToday, FilterOverdue, FilterWeek:
		return DashboardFilter(s)
	default:
		return FilterAll
	}
}

// remoteFilter translates the dashboard filter into the remote service's
// filter language.
func (f DashboardFilter) remoteFilter() string {
	switch f {
	case FilterToday:
		return "today"
	case FilterOverdue:
		return "overdue"
	case FilterWeek:
		return "7 days"
	default:
		return ""
	}
}

// DashboardTask is a remote task enriched with local state for display.
type DashboardTask struct {
	todoist.Task
	ProjectName string                   `json:"project_name"`
	Watchers    []*domain.TaskWatcher    `json:"watchers,omitempty"`
	Rule        *domain.AutoCompleteRule `json:"auto_complete_rule,omitempty"`
}

// Dashboard is the assembled dashboard view for one user.
type Dashboard struct {
	Filter        DashboardFilter        `json:"filter"`
	Tasks         []DashboardTask        `json:"tasks"`
	Projects      []todoist.Project      `json:"projects"`
	Templates     []*domain.TaskTemplate `json:"templates"`
	Notifications []*domain.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// TaskService assembles the dashboard and completes remote tasks, fanning
// completion notifications out to watchers.
type TaskService struct {
	client        TodoistAPI
	templates     store.TemplateStore
	rules         store.RuleStore
	watchers      store.WatcherStore
	notifications store.NotificationStore
	logger        *slog.Logger
}

// NewTaskService creates a TaskService with the given dependencies.
func NewTaskService(
	client TodoistAPI,
	templates store.TemplateStore,
	rules store.RuleStore,
	watchers store.WatcherStore,
	notifications store.NotificationStore,
	logger *slog.Logger,
) (*TaskService, error) {
	if client == nil || templates == nil || rules == nil || watchers == nil || notifications == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		client:        client,
		templates:     templates,
		rules:         rules,
		watchers:      watchers,
		notifications: notifications,
		logger:        logger.With(slog.String("component", "task_service")),
	}, nil
}

// Dashboard assembles the dashboard for the given user: remote tasks matching
// the filter, enriched with project names, watchers and active rules, plus
// the user's recent active templates and unread notifications.
//
// Remote API failures propagate to the caller; the local reads that follow
// only run after the remote reads succeed.
func (s *TaskService) Dashboard(ctx context.Context, userID uuid.UUID, filter DashboardFilter) (*Dashboard, error) {
	tasks, err := s.client.GetTasks(ctx, todoist.ListTasksOptions{Filter: filter.remoteFilter()})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote tasks: %w", err)
	}

	projects, err := s.client.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote projects: %w", err)
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	enriched := make([]DashboardTask, 0, len(tasks))
	for _, task := range tasks {
		dt := DashboardTask{Task: task, ProjectName: "Inbox"}
		if name, ok := projectNames[task.ProjectID]; ok {
			dt.ProjectName = name
		}

		// Enrichment is best effort: a failed local read leaves the task
		// unannotated rather than failing the whole dashboard.
		watchers, err := s.watchers.ListByTask(ctx, task.ID)
		if err != nil {
			s.logger.Error("failed to list watchers for dashboard task",
				slog.String("todoist_task_id", task.ID),
				slog.String("error", err.Error()))
		} else {
			dt.Watchers = watchers
		}

		rule, err := s.rules.GetByTaskID(ctx, task.ID)
		switch {
		case err == nil:
			if rule.IsActive {
				dt.Rule = rule
			}
		case !store.IsNotFoundError(err):
			s.logger.Error("failed to look up rule for dashboard task",
				slog.String("todoist_task_id", task.ID),
				slog.String("error", err.Error()))
		}

		enriched = append(enriched, dt)
	}

	templates, err := s.templates.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) > dashboardTemplateLimit {
		templates = templates[:dashboardTemplateLimit]
	}

	unread, err := s.notifications.ListUnreadByUser(ctx, userID, dashboardNotificationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}

	return &Dashboard{
		Filter:        filter,
		Tasks:         enriched,
		Projects:      projects,
		Templates:     templates,
		Notifications: unread,
		UnreadCount:   len(unread),
	}, nil
}

// CompleteTask closes the remote task and notifies every watcher that opted
// into completion notifications. Fan-out failures are logged per watcher and
// do not fail the completion.
func (s *TaskService) CompleteTask(ctx context.Context, todoistTaskID string) error {
	if err := s.client.CompleteTask(ctx, todoistTaskID); err != nil {
		return fmt.Errorf("failed to complete remote task: %w", err)
	}

	watchers, err := s.watchers.ListByTask(ctx, todoistTaskID)
	if err != nil {
		s.logger.Error("failed to list watchers after task completion",
			slog.String("todoist_task_id", todoistTaskID),
			slog.String("error", err.Error()))
		return nil
	}

	for _, w := range watchers {
		if !w.NotifyOnComplete {
			continue
		}

		n, err := domain.NewNotification(
			w.WatcherID,
			domain.NotificationTaskCompleted,
			"Task completed",
			fmt.Sprintf("Task '%s' was completed", w.TaskContent),
			todoistTaskID,
		)
		if err != nil {
			s.logger.Error("failed to build completion notification",
				slog.String("watcher_id", w.WatcherID.String()),
				slog.String("error", err.Error()))
			continue
		}

		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Error("failed to create completion notification",
				slog.String("watcher_id", w.WatcherID.String()),
				slog.String("error", err.Error()))
		}
	}

	return nil
}
