package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/platform/todoist"
	"github.com/avelldro/taskward/internal/store"
)

// Runner construction errors
var (
	ErrNilClient = errors.New("task API client cannot be nil")
	ErrNilStore  = errors.New("store cannot be nil")
)

// TaskAPI is the slice of the remote task service the runner depends on.
// *todoist.Client satisfies it; tests substitute a mock.
type TaskAPI interface {
	GetTask(ctx context.Context, taskID string) (*todoist.Task, error)
	CreateTask(ctx context.Context, params todoist.CreateTaskParams) (*todoist.Task, error)
	CompleteTask(ctx context.Context, taskID string) error
}

// Mode selects which scan phases a run executes.
type Mode int

const (
	// ModeBoth runs the auto-complete scan followed by the generation scan.
	ModeBoth Mode = iota

	// ModeAutoCompleteOnly runs only the auto-complete scan.
	ModeAutoCompleteOnly

	// ModeGenerateOnly runs only the generation scan.
	ModeGenerateOnly
)

// Report summarizes one scan: how many items were considered, how many
// resulted in an action (task closed, task generated), and how many failed.
// Skipped items (not yet due, no due date) count as processed but neither
// succeeded nor failed.
type Report struct {
	Processed int
	Succeeded int
	Failed    int
}

// Runner executes the auto-complete and generation scans against the stores
// and the remote task API.
type Runner struct {
	client        TaskAPI
	templates     store.TemplateStore
	rules         store.RuleStore
	generated     store.GeneratedTaskStore
	watchers      store.WatcherStore
	notifications store.NotificationStore
	logger        *slog.Logger

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewRunner creates a Runner with the given dependencies.
// If logger is nil, the default logger is used.
func NewRunner(
	client TaskAPI,
	templates store.TemplateStore,
	rules store.RuleStore,
	generated store.GeneratedTaskStore,
	watchers store.WatcherStore,
	notifications store.NotificationStore,
	logger *slog.Logger,
) (*Runner, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if templates == nil || rules == nil || generated == nil || watchers == nil || notifications == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		client:        client,
		templates:     templates,
		rules:         rules,
		generated:     generated,
		watchers:      watchers,
		notifications: notifications,
		logger:        logger.With(slog.String("component", "scheduler")),
		now:           time.Now,
	}, nil
}

// Run executes the scans selected by mode, auto-complete first, and logs a
// structured summary. Partial failures inside a scan never produce an error;
// only a scan that cannot start at all (store listing failure) does.
func (r *Runner) Run(ctx context.Context, mode Mode) error {
	r.logger.Info("starting scheduled run")

	if mode != ModeGenerateOnly {
		report, err := r.RunAutoComplete(ctx)
		if err != nil {
			return fmt.Errorf("auto-complete scan failed: %w", err)
		}
		r.logger.Info("auto-complete scan finished",
			slog.Int("processed", report.Processed),
			slog.Int("completed", report.Succeeded),
			slog.Int("failed", report.Failed))
	}

	if mode != ModeAutoCompleteOnly {
		report, err := r.RunGeneration(ctx)
		if err != nil {
			return fmt.Errorf("generation scan failed: %w", err)
		}
		r.logger.Info("generation scan finished",
			slog.Int("processed", report.Processed),
			slog.Int("generated", report.Succeeded),
			slog.Int("failed", report.Failed))
	}

	r.logger.Info("scheduled run finished")
	return nil
}

// RunAutoComplete scans all pending auto-complete rules and closes every
// remote task whose due time plus grace period has passed. Per-rule failures
// are logged and counted; they never stop the scan.
func (r *Runner) RunAutoComplete(ctx context.Context) (Report, error) {
	rules, err := r.rules.ListPending(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list pending rules: %w", err)
	}

	var report Report
	for _, rule := range rules {
		report.Processed++

		closed, err := r.applyRule(ctx, rule)
		if err != nil {
			report.Failed++
			r.logger.Error("failed to apply auto-complete rule",
				slog.String("rule_id", rule.ID.String()),
				slog.String("todoist_task_id", rule.TodoistTaskID),
				slog.String("task_content", rule.TaskContent),
				slog.String("error", err.Error()))
			continue
		}

		if closed {
			report.Succeeded++
			r.logger.Info("auto-completed task",
				slog.String("rule_id", rule.ID.String()),
				slog.String("todoist_task_id", rule.TodoistTaskID),
				slog.String("task_content", rule.TaskContent))
		}
	}

	return report, nil
}

// applyRule checks a single rule against the remote task and closes the task
// when it is past its deadline. Returns true when the task was closed.
func (r *Runner) applyRule(ctx context.Context, rule *domain.AutoCompleteRule) (bool, error) {
	task, err := r.client.GetTask(ctx, rule.TodoistTaskID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch remote task: %w", err)
	}

	// Tasks without a due date are never auto-completed.
	if task.Due == nil {
		return false, nil
	}

	due, err := task.Due.Time()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidDueDate, err)
	}

	now := r.now()
	if now.Before(rule.Deadline(due)) {
		return false, nil
	}

	if err := r.client.CompleteTask(ctx, rule.TodoistTaskID); err != nil {
		return false, fmt.Errorf("failed to close remote task: %w", err)
	}

	// The remote task is now closed; local bookkeeping failures from here on
	// are logged but do not fail the rule, or a retry would re-close the task.
	if err := rule.Complete(now); err != nil {
		r.logger.Warn("rule already completed locally",
			slog.String("rule_id", rule.ID.String()))
	} else if err := r.rules.Update(ctx, rule); err != nil {
		r.logger.Error("failed to persist completed rule",
			slog.String("rule_id", rule.ID.String()),
			slog.String("error", err.Error()))
	}

	if _, err := r.generated.MarkCompletedByTaskID(ctx, rule.TodoistTaskID); err != nil {
		r.logger.Error("failed to mark generated task completed",
			slog.String("todoist_task_id", rule.TodoistTaskID),
			slog.String("error", err.Error()))
	}

	r.notifyCompletion(ctx, rule.TodoistTaskID)

	return true, nil
}

// notifyCompletion fans a task-completed notification out to every watcher
// of the task that opted into completion notifications. Fan-out failures are
// logged per watcher and never propagate.
func (r *Runner) notifyCompletion(ctx context.Context, todoistTaskID string) {
	watchers, err := r.watchers.ListByTask(ctx, todoistTaskID)
	if err != nil {
		r.logger.Error("failed to list watchers for completed task",
			slog.String("todoist_task_id", todoistTaskID),
			slog.String("error", err.Error()))
		return
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
			r.logger.Error("failed to build completion notification",
				slog.String("watcher_id", w.WatcherID.String()),
				slog.String("error", err.Error()))
			continue
		}

		if err := r.notifications.Create(ctx, n); err != nil {
			r.logger.Error("failed to create completion notification",
				slog.String("watcher_id", w.WatcherID.String()),
				slog.String("error", err.Error()))
		}
	}
}

// RunGeneration scans all active templates and materializes a new remote task
// for each one whose cadence has elapsed. Per-template failures are logged
// and counted; they never stop the scan.
func (r *Runner) RunGeneration(ctx context.Context) (Report, error) {
	templates, err := r.templates.ListActive(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list active templates: %w", err)
	}

	var report Report
	for _, tmpl := range templates {
		report.Processed++

		if !tmpl.ShouldGenerate(r.now()) {
			continue
		}

		record, err := r.Generate(ctx, tmpl)
		if err != nil {
			report.Failed++
			r.logger.Error("failed to generate task from template",
				slog.String("template_id", tmpl.ID.String()),
				slog.String("template_name", tmpl.Name),
				slog.String("error", err.Error()))
			continue
		}

		report.Succeeded++
		r.logger.Info("generated task from template",
			slog.String("template_id", tmpl.ID.String()),
			slog.String("todoist_task_id", record.TodoistTaskID),
			slog.String("task_content", record.TaskContent))
	}

	return report, nil
}

// Generate materializes one task from the template: it computes the next due
// date, renders the content and description, creates the remote task, records
// the generation in the audit log, spawns a zero-grace auto-complete rule
// when the template asks for one, and advances LastGenerated.
//
// Eligibility is the caller's concern: the scan checks ShouldGenerate first,
// while the manual web trigger calls Generate directly.
func (r *Runner) Generate(ctx context.Context, tmpl *domain.TaskTemplate) (*domain.GeneratedTask, error) {
	now := r.now()
	due := tmpl.NextDueDate(now)

	content := tmpl.RenderContent(due)
	description := tmpl.RenderDescription(due)

	task, err := r.client.CreateTask(ctx, todoist.CreateTaskParams{
		Content:     content,
		Description: description,
		ProjectID:   tmpl.ProjectID,
		DueDate:     due.Format("2006-01-02"),
		Priority:    tmpl.Priority,
		Labels:      tmpl.LabelList(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create remote task: %w", err)
	}

	record, err := domain.NewGeneratedTask(tmpl.ID, task.ID, content, due)
	if err != nil {
		return nil, fmt.Errorf("failed to build generated-task record: %w", err)
	}
	if err := r.generated.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record generated task: %w", err)
	}

	if tmpl.AutoComplete {
		rule, err := domain.NewAutoCompleteRule(tmpl.CreatedBy, task.ID, content, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to build auto-complete rule: %w", err)
		}
		if err := r.rules.Create(ctx, rule); err != nil {
			return nil, fmt.Errorf("failed to create auto-complete rule: %w", err)
		}
	}

	tmpl.MarkGenerated(now)
	if err := r.templates.Update(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to advance last_generated: %w", err)
	}

	return record, nil
}
