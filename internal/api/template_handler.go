package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avelldro/taskward/internal/api/shared"
	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/service"
)

// TemplateHandler handles task-template API requests.
type TemplateHandler struct {
	templates *service.TemplateService
	validator *validator.Validate
}

// NewTemplateHandler creates a new TemplateHandler with the given dependencies.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		validator: validator.New(),
	}
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list templates")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, templates)
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tmpl, err := h.templates.Create(r.Context(), userID, service.CreateTemplateParams{
		Name:                req.Name,
		ContentTemplate:     req.ContentTemplate,
		DescriptionTemplate: req.DescriptionTemplate,
		ProjectID:           req.ProjectID,
		Frequency:           frequency,
		Priority:            req.Priority,
		Labels:              req.Labels,
		AutoComplete:        req.AutoComplete,
		IsActive:            isActive,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tmpl)
}

// Generate handles POST /api/templates/{id}/generate, materializing a task
// from the template immediately regardless of its cadence.
func (h *TemplateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	templateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	record, err := h.templates.Generate(r.Context(), templateID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateResponse{Generated: record})
}

// History handles GET /api/templates/{id}/history.
func (h *TemplateHandler) History(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	templateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	records, err := h.templates.History(r.Context(), templateID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}
