// Package services holds the application services between the HTTP layer and
// persistence.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/engine"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/registry"
)

// WorkflowService owns the workflow lifecycle: validation, CRUD, manual
// execution, templates.
type WorkflowService struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	engine      *engine.Engine
	audit       *AuditService
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewWorkflowService(store persistence.Persistence, reg *registry.Registry, eng *engine.Engine, audit *AuditService, logger *slog.Logger) *WorkflowService {
	return &WorkflowService{
		persistence: store,
		registry:    reg,
		engine:      eng,
		audit:       audit,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create validates and stores a new workflow. New workflows start as drafts
// unless the caller sets a status.
func (s *WorkflowService) Create(ctx context.Context, actor Actor, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.Status == "" {
		workflow.Status = models.WorkflowStatusDraft
	}

	err := s.validateWorkflow(workflow)
	if err != nil {
		return nil, err
	}

	workflow.ID = uuid.New().String()
	workflow.CreatedBy = actor.UserID
	workflow.ExecutionCount = 0
	workflow.LastExecuted = nil

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	err = s.persistence.Workflows().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	s.audit.Record(ctx, actor, models.AuditWorkflowCreated, models.AuditSeverityInfo, "workflow", workflow.ID, map[string]any{
		"name":    workflow.Name,
		"trigger": string(workflow.Trigger),
	})

	return workflow, nil
}

// List returns a filtered page of workflows.
func (s *WorkflowService) List(ctx context.Context, opts persistence.ListWorkflowsOptions) (*persistence.WorkflowListResult, error) {
	return s.persistence.Workflows().List(ctx, opts)
}

// FetchByID returns a workflow or ErrWorkflowNotFound.
func (s *WorkflowService) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := s.persistence.Workflows().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow %s: %w", id, err)
	}

	if workflow == nil {
		return nil, persistence.NewStoreError("FetchByID", "workflow", id, persistence.ErrWorkflowNotFound)
	}

	return workflow, nil
}

// Update replaces a workflow's definition. Creation metadata and execution
// counters are preserved from the stored record.
func (s *WorkflowService) Update(ctx context.Context, actor Actor, id string, workflow *models.Workflow) (*models.Workflow, error) {
	existing, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow.Status == "" {
		workflow.Status = existing.Status
	}

	err = s.validateWorkflow(workflow)
	if err != nil {
		return nil, err
	}

	workflow.ID = id
	workflow.CreatedBy = existing.CreatedBy
	workflow.CreatedAt = existing.CreatedAt
	workflow.ExecutionCount = existing.ExecutionCount
	workflow.LastExecuted = existing.LastExecuted

	err = s.persistence.Workflows().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to update workflow %s: %w", id, err)
	}

	s.audit.Record(ctx, actor, models.AuditWorkflowUpdated, models.AuditSeverityInfo, "workflow", id, map[string]any{
		"name": workflow.Name,
	})

	return workflow, nil
}

// Delete removes a workflow or returns ErrWorkflowNotFound.
func (s *WorkflowService) Delete(ctx context.Context, actor Actor, id string) error {
	existing, err := s.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.persistence.Workflows().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	s.audit.Record(ctx, actor, models.AuditWorkflowDeleted, models.AuditSeverityWarning, "workflow", id, map[string]any{
		"name": existing.Name,
	})

	return nil
}

// Execute runs a stored workflow against a payload and returns the execution
// record. The engine translates every failure mode into the record; this
// method only errors when the workflow does not exist.
func (s *WorkflowService) Execute(ctx context.Context, actor Actor, id string, input map[string]any) (*models.WorkflowExecution, error) {
	workflow, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	execution := s.engine.Execute(ctx, workflow, input)

	s.audit.Record(ctx, actor, models.AuditWorkflowExecuted, models.AuditSeverityInfo, "workflow", id, map[string]any{
		"execution_id": execution.ID,
		"status":       string(execution.Status),
	})

	return execution, nil
}

// Executions lists a workflow's execution history, newest first.
func (s *WorkflowService) Executions(ctx context.Context, id string, limit int) ([]*models.WorkflowExecution, error) {
	_, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.persistence.Executions().ListByWorkflow(ctx, id, limit)
}

// ExecutionByID returns one execution record or ErrExecutionNotFound.
func (s *WorkflowService) ExecutionByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	execution, err := s.persistence.Executions().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch execution %s: %w", id, err)
	}

	if execution == nil {
		return nil, persistence.NewStoreError("ExecutionByID", "execution", id, persistence.ErrExecutionNotFound)
	}

	return execution, nil
}

// Templates lists the builtin workflow templates.
func (s *WorkflowService) Templates() []models.WorkflowTemplate {
	return models.BuiltinTemplates
}

// CreateFromTemplate instantiates a builtin template, optionally overriding
// per-action parameters by index.
func (s *WorkflowService) CreateFromTemplate(ctx context.Context, actor Actor, templateKey string, overrides map[int]map[string]any) (*models.Workflow, error) {
	var template *models.WorkflowTemplate

	for i := range models.BuiltinTemplates {
		if models.BuiltinTemplates[i].Key == templateKey {
			template = &models.BuiltinTemplates[i]

			break
		}
	}

	if template == nil {
		return nil, fmt.Errorf("%w: unknown workflow template: %s", ErrValidation, templateKey)
	}

	actions := make([]models.WorkflowActionConfig, len(template.Actions))
	for i, action := range template.Actions {
		parameters := make(map[string]any, len(action.Parameters))
		for key, value := range action.Parameters {
			parameters[key] = value
		}

		for key, value := range overrides[i] {
			parameters[key] = value
		}

		actions[i] = models.WorkflowActionConfig{Type: action.Type, Parameters: parameters}
	}

	workflow := &models.Workflow{
		Name:        template.Name,
		Description: template.Description,
		Trigger:     template.Trigger,
		Conditions:  append([]models.WorkflowCondition(nil), template.Conditions...),
		Actions:     actions,
		Status:      models.WorkflowStatusDraft,
		IsEnabled:   true,
	}

	return s.Create(ctx, actor, workflow)
}

// ActiveByTrigger returns runnable workflows listening on the given trigger.
// The automator uses it to fan a domain event out to its workflows.
func (s *WorkflowService) ActiveByTrigger(ctx context.Context, trigger models.WorkflowTrigger) ([]*models.Workflow, error) {
	status := models.WorkflowStatusActive

	result, err := s.persistence.Workflows().List(ctx, persistence.ListWorkflowsOptions{
		Status:  &status,
		Trigger: &trigger,
		Limit:   100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows for trigger %s: %w", trigger, err)
	}

	workflows := make([]*models.Workflow, 0, len(result.Workflows))

	for _, workflow := range result.Workflows {
		if workflow.Runnable() {
			workflows = append(workflows, workflow)
		}
	}

	return workflows, nil
}

func (s *WorkflowService) validateWorkflow(workflow *models.Workflow) error {
	err := s.validate.Struct(workflow)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if len(workflow.Actions) == 0 {
		return fmt.Errorf("%w: at least one action is required", ErrValidation)
	}

	for i, action := range workflow.Actions {
		err = s.registry.ValidateParameters(action.Type, action.Parameters)
		if err != nil {
			return fmt.Errorf("%w: action %d: %w", ErrValidation, i, err)
		}
	}

	return nil
}
