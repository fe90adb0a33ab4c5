// Package assignuser implements the assign_user workflow action. The portal
// has no assignment ledger yet, so the action records the intent in the
// execution output and the log only.
package assignuser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) ID() string {
	return "assign_user"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"entity_id":   {Type: "string"},
			"entity_type": {Type: "string"},
			"user_id":     {Type: "string"},
			"role":        {Type: "string", Default: "assignee"},
		},
		Required: []string{"entity_id", "entity_type", "user_id"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	entityID, _ := params["entity_id"].(string)
	entityType, _ := params["entity_type"].(string)
	userID, _ := params["user_id"].(string)

	if entityID == "" || entityType == "" || userID == "" {
		return nil, fmt.Errorf("assign_user requires entity_id, entity_type and user_id")
	}

	role, _ := params["role"].(string)
	if role == "" {
		role = "assignee"
	}

	return &Action{
		entityID:   entityID,
		entityType: entityType,
		userID:     userID,
		role:       role,
	}, nil
}

type Action struct {
	entityID   string
	entityType string
	userID     string
	role       string
}

func (a *Action) Execute(ctx context.Context, _ models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger.InfoContext(ctx, "User assigned",
		"action_type", "assign_user",
		"entity_id", a.entityID,
		"entity_type", a.entityType,
		"user_id", a.userID,
		"role", a.role,
	)

	return map[string]any{
		"entity_id":   a.entityID,
		"entity_type": a.entityType,
		"user_id":     a.userID,
		"role":        a.role,
	}, nil
}
