package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avelldro/taskward/internal/api/shared"
	"github.com/avelldro/taskward/internal/service"
)

// RuleHandler handles auto-complete rule API requests.
type RuleHandler struct {
	rules     *service.RuleService
	validator *validator.Validate
}

// NewRuleHandler creates a new RuleHandler with the given dependencies.
func NewRuleHandler(rules *service.RuleService) *RuleHandler {
	return &RuleHandler{
		rules:     rules,
		validator: validator.New(),
	}
}

// List handles GET /api/rules, returning rules that are active and have not
// yet fired.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rules.ListPending(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list rules")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rules)
}

// Create handles POST /api/rules. Creating a rule for a task that already
// has one reactivates the existing rule instead; the response's created
// field reports which happened.
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateRuleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	rule, created, err := h.rules.CreateOrReactivate(
		r.Context(), userID, req.TodoistTaskID, req.TaskContent, req.CompleteAfterHours)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	shared.RespondWithJSON(w, r, status, RuleResponse{Rule: rule, Created: created})
}
