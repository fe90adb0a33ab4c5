package models

import "time"

// AuditAction identifies what happened; the set mirrors the portal's audit
// vocabulary for the subsystems this service owns.
type AuditAction string

const (
	AuditWorkflowCreated  AuditAction = "workflow_created"
	AuditWorkflowUpdated  AuditAction = "workflow_updated"
	AuditWorkflowDeleted  AuditAction = "workflow_deleted"
	AuditWorkflowExecuted AuditAction = "workflow_executed"

	AuditTaskCreated  AuditAction = "task_created"
	AuditTaskUpdated  AuditAction = "task_updated"
	AuditTaskAssigned AuditAction = "task_assigned"

	AuditMeetingUpdated AuditAction = "meeting_updated"

	AuditApplicationStageChanged AuditAction = "aid_application_stage_changed"

	AuditBulkOperationStarted   AuditAction = "bulk_operation_started"
	AuditBulkOperationCompleted AuditAction = "bulk_operation_completed"

	AuditDataExported AuditAction = "data_exported"
)

// AuditSeverity classifies an entry for filtering and alerting.
type AuditSeverity string

const (
	AuditSeverityInfo     AuditSeverity = "info"
	AuditSeverityWarning  AuditSeverity = "warning"
	AuditSeverityError    AuditSeverity = "error"
	AuditSeverityCritical AuditSeverity = "critical"
)

// AuditEntry records one important system activity for compliance review.
type AuditEntry struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id,omitempty"`
	UserEmail  string         `json:"user_email,omitempty"`
	Action     AuditAction    `json:"action"`
	Severity   AuditSeverity  `json:"severity"`
	Resource   string         `json:"resource,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
