// Package persistence provides the data storage abstraction for the portal's
// automation records.
package persistence

import (
	"context"
	"time"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// ListWorkflowsOptions controls filtering, sorting and pagination of workflow
// listings.
type ListWorkflowsOptions struct {
	Limit     int
	Offset    int
	Status    *models.WorkflowStatus
	Trigger   *models.WorkflowTrigger
	SortBy    string
	SortOrder string
}

// WorkflowListResult is a page of workflows plus pagination metadata.
type WorkflowListResult struct {
	Workflows   []*models.Workflow
	TotalCount  int64
	HasNextPage bool
}

// WorkflowRepository stores workflow definitions. GetByID returns (nil, nil)
// when no workflow exists; callers translate that into ErrWorkflowNotFound.
type WorkflowRepository interface {
	List(ctx context.Context, opts ListWorkflowsOptions) (*WorkflowListResult, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error

	// IncrementExecution bumps the execution counter and last-executed
	// timestamp in one atomic step. Concurrent executions of the same
	// workflow must not lose updates.
	IncrementExecution(ctx context.Context, id string, executedAt time.Time) error
}

// ExecutionRepository stores execution records. Records are append-only.
type ExecutionRepository interface {
	Save(ctx context.Context, execution *models.WorkflowExecution) error
	GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error)
	ListByWorkflow(ctx context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error)
}

// TaskRepository stores task records.
type TaskRepository interface {
	Save(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Task, error)
}

// MeetingRepository stores meeting records.
type MeetingRepository interface {
	Save(ctx context.Context, meeting *models.Meeting) error
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Meeting, error)
}

// ApplicationRepository stores aid application records.
type ApplicationRepository interface {
	Save(ctx context.Context, application *models.AidApplication) error
	GetByID(ctx context.Context, id string) (*models.AidApplication, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.AidApplication, error)
}

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	Save(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error)
}

// AuditFilter narrows audit log listings. Zero values match everything.
type AuditFilter struct {
	UserID   string
	Action   models.AuditAction
	Severity models.AuditSeverity
	Resource string
	Since    time.Time
	Until    time.Time
	Limit    int
}

// AuditRepository stores audit entries. Entries are append-only.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*models.AuditEntry, error)
}

// Persistence aggregates the repositories of one storage backend.
type Persistence interface {
	Workflows() WorkflowRepository
	Executions() ExecutionRepository
	Tasks() TaskRepository
	Meetings() MeetingRepository
	Applications() ApplicationRepository
	Notifications() NotificationRepository
	AuditLogs() AuditRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
