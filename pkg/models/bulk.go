package models

import "time"

// BulkAction is a batch operation applied to a set of entity ids.
type BulkAction string

const (
	BulkActionDelete     BulkAction = "delete"
	BulkActionUpdate     BulkAction = "update"
	BulkActionExport     BulkAction = "export"
	BulkActionArchive    BulkAction = "archive"
	BulkActionActivate   BulkAction = "activate"
	BulkActionDeactivate BulkAction = "deactivate"
	BulkActionAssign     BulkAction = "assign"
	BulkActionTag        BulkAction = "tag"
)

// BulkEntityType names the record collection a bulk operation targets.
type BulkEntityType string

const (
	BulkEntityTask        BulkEntityType = "task"
	BulkEntityMeeting     BulkEntityType = "meeting"
	BulkEntityApplication BulkEntityType = "aid_application"
)

// BulkOperationStatus tracks a bulk run from creation to its terminal state.
type BulkOperationStatus string

const (
	BulkStatusPending   BulkOperationStatus = "pending"
	BulkStatusRunning   BulkOperationStatus = "running"
	BulkStatusCompleted BulkOperationStatus = "completed"
	BulkStatusFailed    BulkOperationStatus = "failed"
)

// BulkOperationError captures one failed item; the run continues past it.
type BulkOperationError struct {
	EntityID string `json:"entity_id"`
	Message  string `json:"message"`
}

// BulkOperation is the progress record of one batch run over entity ids.
type BulkOperation struct {
	ID          string               `json:"id"`
	EntityType  BulkEntityType       `json:"entity_type"`
	Action      BulkAction           `json:"action"`
	EntityIDs   []string             `json:"entity_ids"`
	Status      BulkOperationStatus  `json:"status"`
	Progress    int                  `json:"progress"` // 0-100
	Total       int                  `json:"total"`
	Processed   int                  `json:"processed"`
	Succeeded   int                  `json:"succeeded"`
	Failed      int                  `json:"failed"`
	Errors      []BulkOperationError `json:"errors,omitempty"`
	Result      any                  `json:"result,omitempty"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}
