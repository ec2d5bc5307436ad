package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avelldro/taskward/internal/config"
)

// rateLimitWarnThreshold is the remaining-request count below which the
// client logs a warning. No backoff or retry is attempted.
const rateLimitWarnThreshold = 10

// maxErrorBodyBytes bounds how much of an error response body is kept.
const maxErrorBodyBytes = 2048

// Client issues authenticated calls against the Todoist REST API v2.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client from the given configuration.
// If logger is nil, the default logger is used. The underlying http.Client
// keeps its defaults; no timeout is layered on top.
func NewClient(cfg config.TodoistConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		httpc:   &http.Client{},
		logger:  logger.With(slog.String("component", "todoist_client")),
	}
}

// do issues a request against the API and decodes the JSON response into out
// (when out is non-nil). Returns *APIError for non-2xx responses and wrapped
// transport errors otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("todoist request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("todoist request %s %s failed: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", slog.String("error", cerr.Error()))
		}
	}()

	c.checkRateLimit(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
		c.logger.Error("todoist API error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode todoist response for %s %s: %w", method, path, err)
	}

	return nil
}

// checkRateLimit inspects the remaining-quota header and warns when it runs
// low. The header's absence is ignored.
func (c *Client) checkRateLimit(resp *http.Response) {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}

	n, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}

	if n < rateLimitWarnThreshold {
		c.logger.Warn("todoist API rate limit low",
			slog.Int("requests_remaining", n))
	}
}

// GetProjects returns all projects.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetTasks returns active tasks, optionally narrowed by project or filter.
func (c *Client) GetTasks(ctx context.Context, opts ListTasksOptions) ([]Task, error) {
	query := url.Values{}
	if opts.ProjectID != "" {
		query.Set("project_id", opts.ProjectID)
	}
	if opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}

	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+taskID, nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task and returns the created remote task.
func (c *Client) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, params.body(), &task); err != nil {
		return nil, err
	}

	c.logger.Info("todoist task created",
		slog.String("task_id", task.ID),
		slog.String("content", task.Content))
	return &task, nil
}

// UpdateTask updates an existing task and returns the updated remote task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks/"+taskID, nil, params.body(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks the task as complete.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, "/tasks/"+taskID+"/close", nil, nil, nil); err != nil {
		return err
	}

	c.logger.Info("todoist task completed", slog.String("task_id", taskID))
	return nil
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, "/tasks/"+taskID+"/reopen", nil, nil, nil); err != nil {
		return err
	}

	c.logger.Info("todoist task reopened", slog.String("task_id", taskID))
	return nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil, nil); err != nil {
		return err
	}

	c.logger.Info("todoist task deleted", slog.String("task_id", taskID))
	return nil
}

// GetComments returns all comments on a task.
func (c *Client) GetComments(ctx context.Context, taskID string) ([]Comment, error) {
	query := url.Values{}
	query.Set("task_id", taskID)

	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/comments", query, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID, content string) (*Comment, error) {
	body := map[string]any{
		"task_id": taskID,
		"content": content,
	}

	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetLabels returns all labels.
func (c *Client) GetLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, http.MethodGet, "/labels", nil, nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// CreateLabel creates a new label. Color may be empty.
func (c *Client) CreateLabel(ctx context.Context, name, color string) (*Label, error) {
	body := map[string]any{"name": name}
	if color != "" {
		body["color"] = color
	}

	var label Label
	if err := c.do(ctx, http.MethodPost, "/labels", nil, body, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// GetOverdueTasks returns all overdue tasks.
func (c *Client) GetOverdueTasks(ctx context.Context) ([]Task, error) {
	return c.GetTasks(ctx, ListTasksOptions{Filter: "overdue"})
}

// GetTodayTasks returns tasks due today.
func (c *Client) GetTodayTasks(ctx context.Context) ([]Task, error) {
	return c.GetTasks(ctx, ListTasksOptions{Filter: "today"})
}

// GetUpcomingTasks returns tasks due within the next n days.
func (c *Client) GetUpcomingTasks(ctx context.Context, days int) ([]Task, error) {
	return c.GetTasks(ctx, ListTasksOptions{Filter: fmt.Sprintf("%d days", days)})
}
