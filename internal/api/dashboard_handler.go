package api

import (
	"net/http"

	"github.com/avelldro/taskward/internal/api/shared"
	"github.com/avelldro/taskward/internal/service"
)

// DashboardHandler serves the assembled task dashboard.
type DashboardHandler struct {
	tasks *service.TaskService
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
func NewDashboardHandler(tasks *service.TaskService) *DashboardHandler {
	return &DashboardHandler{tasks: tasks}
}

// Get handles GET /api/dashboard. The optional filter query parameter
// selects which remote tasks are shown; unknown values fall back to "all".
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := service.ParseDashboardFilter(r.URL.Query().Get("filter"))

	dashboard, err := h.tasks.Dashboard(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}
