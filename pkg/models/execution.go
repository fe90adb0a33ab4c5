package models

import "time"

// ExecutionStatus is the terminal (or pending) state of one engine run.
type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "pending"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusSkipped ExecutionStatus = "skipped"
)

// WorkflowExecution is the immutable record of one run of a workflow. The
// workflow definition may be edited or deleted afterwards, so this record is
// the durable account of what ran.
type WorkflowExecution struct {
	ID          string          `json:"id"`
	WorkflowID  string          `json:"workflow_id"`
	Trigger     WorkflowTrigger `json:"trigger"`
	Status      ExecutionStatus `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Input       map[string]any  `json:"input"`
	Output      map[string]any  `json:"output,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// ExecutionContext carries per-run state into action handlers. StepResults is
// keyed by "<index>:<type>" so two actions of the same type in one workflow
// keep separate slots.
type ExecutionContext struct {
	ID          string
	WorkflowID  string
	Trigger     WorkflowTrigger
	Input       map[string]any
	StepResults map[string]any
}
