// Package web provides HTTP request and response types for the automation API.
package web

import "github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	Name        string                        `json:"name"        validate:"required,min=3"`
	Description string                        `json:"description"`
	Trigger     models.WorkflowTrigger        `json:"trigger"     validate:"required"`
	Conditions  []models.WorkflowCondition    `json:"conditions"`
	Actions     []models.WorkflowActionConfig `json:"actions"     validate:"required,min=1"`
	Status      models.WorkflowStatus         `json:"status"`
	IsEnabled   bool                          `json:"is_enabled"`
}

// UpdateWorkflowRequest replaces a workflow's definition. Creation metadata
// and execution counters are preserved server-side.
type UpdateWorkflowRequest struct {
	Name        string                        `json:"name"        validate:"required,min=3"`
	Description string                        `json:"description"`
	Trigger     models.WorkflowTrigger        `json:"trigger"     validate:"required"`
	Conditions  []models.WorkflowCondition    `json:"conditions"`
	Actions     []models.WorkflowActionConfig `json:"actions"     validate:"required,min=1"`
	Status      models.WorkflowStatus         `json:"status"`
	IsEnabled   bool                          `json:"is_enabled"`
}

// ExecuteWorkflowRequest carries the trigger payload for a manual run.
type ExecuteWorkflowRequest struct {
	Input map[string]any `json:"input"`
}

// CreateFromTemplateRequest instantiates a builtin template. Overrides are
// keyed by action index.
type CreateFromTemplateRequest struct {
	Overrides map[int]map[string]any `json:"overrides"`
}

func (r CreateWorkflowRequest) toModel() *models.Workflow {
	return &models.Workflow{
		Name:        r.Name,
		Description: r.Description,
		Trigger:     r.Trigger,
		Conditions:  r.Conditions,
		Actions:     r.Actions,
		Status:      r.Status,
		IsEnabled:   r.IsEnabled,
	}
}

func (r UpdateWorkflowRequest) toModel() *models.Workflow {
	return &models.Workflow{
		Name:        r.Name,
		Description: r.Description,
		Trigger:     r.Trigger,
		Conditions:  r.Conditions,
		Actions:     r.Actions,
		Status:      r.Status,
		IsEnabled:   r.IsEnabled,
	}
}
