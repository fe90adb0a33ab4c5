// Package models defines the core domain models for the portal automation engine.
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusActive   WorkflowStatus = "active"
	WorkflowStatusInactive WorkflowStatus = "inactive"
	WorkflowStatusDraft    WorkflowStatus = "draft"
	WorkflowStatusTesting  WorkflowStatus = "testing"
)

// WorkflowTrigger names the category of domain event a workflow reacts to.
// The engine does not match triggers itself; callers select workflows whose
// trigger matches the firing event.
type WorkflowTrigger string

const (
	TriggerBeneficiaryCreated      WorkflowTrigger = "beneficiary_created"
	TriggerDonationReceived        WorkflowTrigger = "donation_received"
	TriggerAidApplicationSubmitted WorkflowTrigger = "aid_application_submitted"
	TriggerTaskAssigned            WorkflowTrigger = "task_assigned"
	TriggerMeetingScheduled        WorkflowTrigger = "meeting_scheduled"
	TriggerDeadlineApproaching     WorkflowTrigger = "deadline_approaching"
	TriggerCustom                  WorkflowTrigger = "custom"
)

// ConditionOperator is the comparison applied by a single condition clause.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorContains    ConditionOperator = "contains"
	OperatorExists      ConditionOperator = "exists"
)

// WorkflowCondition is one clause evaluated against the trigger payload.
// Value is unused for the exists operator.
type WorkflowCondition struct {
	Field    string            `json:"field"    validate:"required"`
	Operator ConditionOperator `json:"operator" validate:"required,oneof=equals not_equals greater_than less_than contains exists"`
	Value    any               `json:"value,omitempty"`
}

// WorkflowActionConfig is one unit of work in a workflow's action list.
// Parameters are action-specific; validation happens per handler via its
// registered JSON schema.
type WorkflowActionConfig struct {
	Type       string         `json:"type"       validate:"required"`
	Parameters map[string]any `json:"parameters"`
}

// Workflow is a stored automation rule: when <trigger> fires and <conditions>
// hold, run <actions> in order.
type Workflow struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"        validate:"required,min=3"`
	Description    string                 `json:"description"`
	Trigger        WorkflowTrigger        `json:"trigger"     validate:"required"`
	Conditions     []WorkflowCondition    `json:"conditions"`
	Actions        []WorkflowActionConfig `json:"actions"`
	Status         WorkflowStatus         `json:"status"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	ExecutionCount int64                  `json:"execution_count"`
	LastExecuted   *time.Time             `json:"last_executed,omitempty"`
	IsEnabled      bool                   `json:"is_enabled"`
}

// Runnable reports whether the engine may execute this workflow.
// Status and IsEnabled are separate toggles; both must allow it.
func (w *Workflow) Runnable() bool {
	return w.Status == WorkflowStatusActive && w.IsEnabled
}
