package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelldro/taskward/internal/api/shared"
	"github.com/avelldro/taskward/internal/service"
)

// TaskHandler handles remote-task API requests.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Complete handles POST /api/tasks/{id}/complete. It closes the task on the
// remote service and notifies watchers that opted into completion
// notifications.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	taskID := chi.URLParam(r, "id")
	if taskID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return
	}

	if err := h.tasks.CompleteTask(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
