package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// BulkRequest describes one batch operation over entity ids.
type BulkRequest struct {
	EntityType models.BulkEntityType `json:"entity_type" validate:"required,oneof=task meeting aid_application"`
	Action     models.BulkAction     `json:"action"      validate:"required,oneof=delete update export archive activate deactivate assign tag"`
	EntityIDs  []string              `json:"entity_ids"  validate:"required,min=1"`
	Payload    map[string]any        `json:"payload"`
}

// BulkService runs batch operations sequentially, capturing per-item failures
// without aborting the run. Finished operations stay queryable in memory for
// the lifetime of the process; runs are synchronous, so the record is a
// convenience, not the source of truth.
type BulkService struct {
	persistence persistence.Persistence
	audit       *AuditService
	logger      *slog.Logger

	mu         sync.Mutex
	operations map[string]*models.BulkOperation
}

func NewBulkService(store persistence.Persistence, audit *AuditService, logger *slog.Logger) *BulkService {
	return &BulkService{
		persistence: store,
		audit:       audit,
		logger:      logger,
		operations:  make(map[string]*models.BulkOperation),
	}
}

// Get returns a finished operation by id, or nil when unknown.
func (s *BulkService) Get(id string) *models.BulkOperation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.operations[id]
}

// Run executes the batch and returns the finished operation record. Items are
// processed in order; a failed item is recorded and the run continues.
func (s *BulkService) Run(ctx context.Context, actor Actor, req BulkRequest) (*models.BulkOperation, error) {
	if len(req.EntityIDs) == 0 {
		return nil, fmt.Errorf("bulk operation requires at least one entity id")
	}

	switch req.Action {
	case models.BulkActionDelete, models.BulkActionUpdate, models.BulkActionExport,
		models.BulkActionArchive, models.BulkActionActivate, models.BulkActionDeactivate,
		models.BulkActionAssign, models.BulkActionTag:
	default:
		return nil, fmt.Errorf("unknown bulk action: %s", req.Action)
	}

	startedAt := time.Now().UTC()
	operation := &models.BulkOperation{
		ID:         uuid.New().String(),
		EntityType: req.EntityType,
		Action:     req.Action,
		EntityIDs:  req.EntityIDs,
		Status:     models.BulkStatusRunning,
		Total:      len(req.EntityIDs),
		StartedAt:  &startedAt,
	}

	s.audit.Record(ctx, actor, models.AuditBulkOperationStarted, models.AuditSeverityInfo, string(req.EntityType), operation.ID, map[string]any{
		"action": string(req.Action),
		"total":  operation.Total,
	})

	exported := make([]any, 0)

	for _, entityID := range req.EntityIDs {
		record, err := s.applyOne(ctx, req, entityID)

		operation.Processed++
		operation.Progress = operation.Processed * 100 / operation.Total

		if err != nil {
			operation.Failed++
			operation.Errors = append(operation.Errors, models.BulkOperationError{
				EntityID: entityID,
				Message:  err.Error(),
			})

			s.logger.WarnContext(ctx, "Bulk operation item failed",
				"operation_id", operation.ID,
				"entity_id", entityID,
				"error", err,
			)

			continue
		}

		operation.Succeeded++

		if req.Action == models.BulkActionExport {
			exported = append(exported, record)
		}
	}

	completedAt := time.Now().UTC()
	operation.CompletedAt = &completedAt

	if operation.Succeeded == 0 && operation.Total > 0 {
		operation.Status = models.BulkStatusFailed
	} else {
		operation.Status = models.BulkStatusCompleted
	}

	if req.Action == models.BulkActionExport {
		operation.Result = exported

		s.audit.Record(ctx, actor, models.AuditDataExported, models.AuditSeverityWarning, string(req.EntityType), operation.ID, map[string]any{
			"count": len(exported),
		})
	}

	s.audit.Record(ctx, actor, models.AuditBulkOperationCompleted, models.AuditSeverityInfo, string(req.EntityType), operation.ID, map[string]any{
		"status":    string(operation.Status),
		"succeeded": operation.Succeeded,
		"failed":    operation.Failed,
	})

	s.mu.Lock()
	s.operations[operation.ID] = operation
	s.mu.Unlock()

	return operation, nil
}

func (s *BulkService) applyOne(ctx context.Context, req BulkRequest, entityID string) (any, error) {
	switch req.EntityType {
	case models.BulkEntityTask:
		return s.applyTask(ctx, req, entityID)
	case models.BulkEntityMeeting:
		return s.applyMeeting(ctx, req, entityID)
	case models.BulkEntityApplication:
		return s.applyApplication(ctx, req, entityID)
	default:
		return nil, fmt.Errorf("unknown bulk entity type: %s", req.EntityType)
	}
}

func (s *BulkService) applyTask(ctx context.Context, req BulkRequest, entityID string) (any, error) {
	repo := s.persistence.Tasks()

	task, err := repo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if task == nil {
		return nil, persistence.NewStoreError("bulk", "task", entityID, persistence.ErrTaskNotFound)
	}

	switch req.Action {
	case models.BulkActionDelete:
		return nil, repo.Delete(ctx, entityID)
	case models.BulkActionExport:
		return task, nil
	case models.BulkActionArchive, models.BulkActionDeactivate:
		task.Archived = true
	case models.BulkActionActivate:
		task.Archived = false
	case models.BulkActionAssign:
		assignee, _ := req.Payload["assigned_to"].(string)
		if assignee == "" {
			return nil, fmt.Errorf("assign requires payload field assigned_to")
		}

		task.AssignedTo = assignee
	case models.BulkActionTag:
		tag, _ := req.Payload["tag"].(string)
		if tag == "" {
			return nil, fmt.Errorf("tag requires payload field tag")
		}

		task.Tags = appendUnique(task.Tags, tag)
	case models.BulkActionUpdate:
		if status, ok := req.Payload["status"].(string); ok {
			task.Status = models.TaskStatus(status)
		}

		if priority, ok := req.Payload["priority"].(string); ok {
			task.Priority = models.TaskPriority(priority)
		}
	}

	task.UpdatedAt = time.Now().UTC()

	return nil, repo.Save(ctx, task)
}

func (s *BulkService) applyMeeting(ctx context.Context, req BulkRequest, entityID string) (any, error) {
	repo := s.persistence.Meetings()

	meeting, err := repo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if meeting == nil {
		return nil, persistence.NewStoreError("bulk", "meeting", entityID, persistence.ErrMeetingNotFound)
	}

	switch req.Action {
	case models.BulkActionDelete:
		return nil, repo.Delete(ctx, entityID)
	case models.BulkActionExport:
		return meeting, nil
	case models.BulkActionArchive, models.BulkActionDeactivate:
		meeting.Archived = true
	case models.BulkActionActivate:
		meeting.Archived = false
	case models.BulkActionUpdate:
		if status, ok := req.Payload["status"].(string); ok {
			meeting.Status = models.MeetingStatus(status)
		}
	case models.BulkActionAssign, models.BulkActionTag:
		return nil, fmt.Errorf("bulk action %s is not supported for meetings", req.Action)
	}

	meeting.UpdatedAt = time.Now().UTC()

	return nil, repo.Save(ctx, meeting)
}

func (s *BulkService) applyApplication(ctx context.Context, req BulkRequest, entityID string) (any, error) {
	repo := s.persistence.Applications()

	application, err := repo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if application == nil {
		return nil, persistence.NewStoreError("bulk", "aid_application", entityID, persistence.ErrApplicationNotFound)
	}

	switch req.Action {
	case models.BulkActionDelete:
		return nil, repo.Delete(ctx, entityID)
	case models.BulkActionExport:
		return application, nil
	case models.BulkActionArchive, models.BulkActionDeactivate:
		application.Archived = true
	case models.BulkActionActivate:
		application.Archived = false
	case models.BulkActionAssign:
		assignee, _ := req.Payload["assigned_to"].(string)
		if assignee == "" {
			return nil, fmt.Errorf("assign requires payload field assigned_to")
		}

		application.AssignedTo = assignee
	case models.BulkActionTag:
		tag, _ := req.Payload["tag"].(string)
		if tag == "" {
			return nil, fmt.Errorf("tag requires payload field tag")
		}

		application.Tags = appendUnique(application.Tags, tag)
	case models.BulkActionUpdate:
		if stage, ok := req.Payload["stage"].(string); ok {
			application.Stage = models.ApplicationStage(stage)
		}
	}

	application.UpdatedAt = time.Now().UTC()

	return nil, repo.Save(ctx, application)
}

func appendUnique(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}

	return append(tags, tag)
}
