package models

import "time"

// TaskStatus is the lifecycle state of a task record.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority values mirror the portal's task form.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is an assignable unit of work tracked by the association.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assigned_to"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Archived    bool         `json:"archived"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// MeetingStatus is the lifecycle state of a meeting record.
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting is a scheduled gathering (board meetings, beneficiary interviews).
type Meeting struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"        validate:"required"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Location    string        `json:"location"`
	Organizer   string        `json:"organizer"`
	Status      MeetingStatus `json:"status"`
	Archived    bool          `json:"archived"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ApplicationStage is the review stage of an aid application.
type ApplicationStage string

const (
	StageDraft       ApplicationStage = "draft"
	StageUnderReview ApplicationStage = "under_review"
	StageApproved    ApplicationStage = "approved"
	StageRejected    ApplicationStage = "rejected"
)

// AidApplication is a beneficiary's request for assistance.
type AidApplication struct {
	ID            string           `json:"id"`
	BeneficiaryID string           `json:"beneficiary_id" validate:"required"`
	Stage         ApplicationStage `json:"stage"`
	Amount        float64          `json:"amount"`
	AssignedTo    string           `json:"assigned_to"`
	Tags          []string         `json:"tags,omitempty"`
	Archived      bool             `json:"archived"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NotificationPriority mirrors the portal's notification levels.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

// Notification is an in-app alert delivered to a portal user.
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	IsRead    bool                 `json:"is_read"`
	ActionURL string               `json:"action_url,omitempty"`
	Metadata  map[string]any       `json:"metadata,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
