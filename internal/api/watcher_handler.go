package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avelldro/taskward/internal/api/shared"
	"github.com/avelldro/taskward/internal/service"
)

// WatcherHandler handles task-watcher API requests.
type WatcherHandler struct {
	watchers  *service.WatcherService
	validator *validator.Validate
}

// NewWatcherHandler creates a new WatcherHandler with the given dependencies.
func NewWatcherHandler(watchers *service.WatcherService) *WatcherHandler {
	return &WatcherHandler{
		watchers:  watchers,
		validator: validator.New(),
	}
}

// Add handles POST /api/watchers. Adding a user who is already watching the
// task is a no-op: the existing registration comes back with created=false.
func (h *WatcherHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddWatcherRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	watcher, created, err := h.watchers.AddWatcher(
		r.Context(), userID, req.TodoistTaskID, req.TaskContent, req.WatcherUsername)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	shared.RespondWithJSON(w, r, status, WatcherResponse{Watcher: watcher, Created: created})
}

// Remove handles DELETE /api/watchers/{id}. Only the watcher themselves or
// the user who added them may remove the registration.
func (h *WatcherHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	watcherID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.watchers.RemoveWatcher(r.Context(), userID, watcherID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
