// Package updatestatus implements the update_status workflow action.
package updatestatus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

type Factory struct {
	tasks    persistence.TaskRepository
	meetings persistence.MeetingRepository
}

func NewFactory(tasks persistence.TaskRepository, meetings persistence.MeetingRepository) *Factory {
	return &Factory{tasks: tasks, meetings: meetings}
}

func (*Factory) ID() string {
	return "update_status"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"entity_type": {Type: "string", Enum: []any{"task", "meeting"}},
			"entity_id":   {Type: "string"},
			"status":      {Type: "string"},
		},
		Required: []string{"entity_type", "entity_id", "status"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	entityType, _ := params["entity_type"].(string)
	entityID, _ := params["entity_id"].(string)
	status, _ := params["status"].(string)

	if entityType == "" || entityID == "" || status == "" {
		return nil, fmt.Errorf("update_status requires entity_type, entity_id and status")
	}

	return &Action{
		tasks:      f.tasks,
		meetings:   f.meetings,
		entityType: entityType,
		entityID:   entityID,
		status:     status,
	}, nil
}

type Action struct {
	tasks      persistence.TaskRepository
	meetings   persistence.MeetingRepository
	entityType string
	entityID   string
	status     string
}

func (a *Action) Execute(ctx context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger = logger.With("action_type", "update_status", "entity_type", a.entityType, "entity_id", a.entityID)

	switch a.entityType {
	case "task":
		err := a.updateTask(ctx)
		if err != nil {
			return nil, err
		}
	case "meeting":
		err := a.updateMeeting(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported entity type for status update: %s", a.entityType)
	}

	logger.InfoContext(ctx, "Status updated", "status", a.status)

	return map[string]any{
		"entity_type": a.entityType,
		"entity_id":   a.entityID,
		"status":      a.status,
	}, nil
}

func (a *Action) updateTask(ctx context.Context) error {
	task, err := a.tasks.GetByID(ctx, a.entityID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", a.entityID, err)
	}

	if task == nil {
		return persistence.NewStoreError("update_status", "task", a.entityID, persistence.ErrTaskNotFound)
	}

	task.Status = models.TaskStatus(a.status)
	task.UpdatedAt = time.Now().UTC()

	err = a.tasks.Save(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", a.entityID, err)
	}

	return nil
}

func (a *Action) updateMeeting(ctx context.Context) error {
	meeting, err := a.meetings.GetByID(ctx, a.entityID)
	if err != nil {
		return fmt.Errorf("failed to load meeting %s: %w", a.entityID, err)
	}

	if meeting == nil {
		return persistence.NewStoreError("update_status", "meeting", a.entityID, persistence.ErrMeetingNotFound)
	}

	meeting.Status = models.MeetingStatus(a.status)
	meeting.UpdatedAt = time.Now().UTC()

	err = a.meetings.Save(ctx, meeting)
	if err != nil {
		return fmt.Errorf("failed to update meeting %s: %w", a.entityID, err)
	}

	return nil
}
