package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelldro/taskward/internal/domain"
	"github.com/avelldro/taskward/internal/store"
)

// Generator materializes one task from a template. *scheduler.Runner
// satisfies it; the manual web trigger and the batch scan share the same
// code path through this interface.
type Generator interface {
	Generate(ctx context.Context, tmpl *domain.TaskTemplate) (*domain.GeneratedTask, error)
}

// CreateTemplateParams carries the fields for a new task template.
type CreateTemplateParams struct {
	Name                string
	ContentTemplate     string
	DescriptionTemplate string
	ProjectID           string
	Frequency           domain.Frequency
	Priority            int
	Labels              string
	AutoComplete        bool
	IsActive            bool
}

// TemplateService manages task templates, the manual generation trigger,
// and the per-template generation history.
type TemplateService struct {
	templates store.TemplateStore
	generated store.GeneratedTaskStore
	generator Generator
	logger    *slog.Logger
}

// NewTemplateService creates a TemplateService with the given dependencies.
func NewTemplateService(
	templates store.TemplateStore,
	generated store.GeneratedTaskStore,
	generator Generator,
	logger *slog.Logger,
) (*TemplateService, error) {
	if templates == nil || generated == nil || generator == nil {
		return nil, ErrNilDependency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TemplateService{
		templates: templates,
		generated: generated,
		generator: generator,
		logger:    logger.With(slog.String("component", "template_service")),
	}, nil
}

// List returns all templates, newest first.
func (s *TemplateService) List(ctx context.Context) ([]*domain.TaskTemplate, error) {
	return s.templates.List(ctx)
}

// Create validates and persists a new template owned by the given user.
func (s *TemplateService) Create(ctx context.Context, userID uuid.UUID, params CreateTemplateParams) (*domain.TaskTemplate, error) {
	tmpl, err := domain.NewTaskTemplate(userID, params.Name, params.ContentTemplate, params.Frequency)
	if err != nil {
		return nil, err
	}

	tmpl.DescriptionTemplate = params.DescriptionTemplate
	tmpl.ProjectID = params.ProjectID
	if params.Priority != 0 {
		tmpl.Priority = params.Priority
	}
	tmpl.Labels = params.Labels
	tmpl.AutoComplete = params.AutoComplete
	tmpl.IsActive = params.IsActive

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("template created",
		slog.String("template_id", tmpl.ID.String()),
		slog.String("name", tmpl.Name),
		slog.String("frequency", tmpl.Frequency.String()))

	return tmpl, nil
}

// Generate manually materializes a task from the template, bypassing the
// cadence eligibility check. Returns store.ErrTemplateNotFound for an
// unknown template.
func (s *TemplateService) Generate(ctx context.Context, templateID uuid.UUID) (*domain.GeneratedTask, error) {
	tmpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	record, err := s.generator.Generate(ctx, tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate from template: %w", err)
	}

	return record, nil
}

// History returns the template's generation records, most recent due date
// first. Returns store.ErrTemplateNotFound for an unknown template.
func (s *TemplateService) History(ctx context.Context, templateID uuid.UUID) ([]*domain.GeneratedTask, error) {
	if _, err := s.templates.GetByID(ctx, templateID); err != nil {
		return nil, err
	}

	return s.generated.ListByTemplate(ctx, templateID)
}
