// Package notification implements the send_notification workflow action.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

type Factory struct {
	notifications persistence.NotificationRepository
}

func NewFactory(notifications persistence.NotificationRepository) *Factory {
	return &Factory{notifications: notifications}
}

func (*Factory) ID() string {
	return "send_notification"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"recipient": {Type: "string", Description: "User ID of the recipient; falls back to the trigger payload's user_id"},
			"type":      {Type: "string", Description: "Notification category shown in the portal"},
			"title":     {Type: "string"},
			"message":   {Type: "string"},
			"priority": {
				Type:    "string",
				Enum:    []any{"low", "normal", "high", "urgent"},
				Default: "normal",
			},
		},
		Required: []string{"title"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	title, _ := params["title"].(string)
	if title == "" {
		return nil, fmt.Errorf("send_notification requires a title")
	}

	recipient, _ := params["recipient"].(string)
	notificationType, _ := params["type"].(string)
	message, _ := params["message"].(string)

	priority, _ := params["priority"].(string)
	if priority == "" {
		priority = string(models.NotificationPriorityNormal)
	}

	return &Action{
		notifications:    f.notifications,
		recipient:        recipient,
		notificationType: notificationType,
		title:            title,
		message:          message,
		priority:         models.NotificationPriority(priority),
	}, nil
}

type Action struct {
	notifications    persistence.NotificationRepository
	recipient        string
	notificationType string
	title            string
	message          string
	priority         models.NotificationPriority
}

func (a *Action) Execute(ctx context.Context, executionCtx models.ExecutionContext, logger *slog.Logger) (any, error) {
	recipient := a.recipient
	if recipient == "" {
		recipient, _ = executionCtx.Input["user_id"].(string)
	}

	if recipient == "" {
		return nil, fmt.Errorf("send_notification has no recipient: neither parameters nor trigger payload carry one")
	}

	notification := &models.Notification{
		ID:       uuid.New().String(),
		UserID:   recipient,
		Type:     a.notificationType,
		Title:    a.title,
		Message:  a.message,
		Priority: a.priority,
		Metadata: map[string]any{
			"workflow_id":  executionCtx.WorkflowID,
			"execution_id": executionCtx.ID,
		},
		CreatedAt: time.Now().UTC(),
	}

	err := a.notifications.Save(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to deliver notification: %w", err)
	}

	logger.InfoContext(ctx, "Notification delivered",
		"action_type", "send_notification",
		"notification_id", notification.ID,
		"recipient", recipient,
	)

	return map[string]any{
		"notification_id": notification.ID,
		"recipient":       recipient,
		"title":           a.title,
	}, nil
}
