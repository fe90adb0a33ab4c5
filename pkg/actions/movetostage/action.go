// Package movetostage implements the move_to_stage workflow action for aid
// applications.
package movetostage

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
	applications persistence.ApplicationRepository
}

func NewFactory(applications persistence.ApplicationRepository) *Factory {
	return &Factory{applications: applications}
}

func (*Factory) ID() string {
	return "move_to_stage"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"application_id": {Type: "string", Description: "Falls back to the trigger payload's application_id"},
			"stage": {
				Type: "string",
				Enum: []any{"draft", "under_review", "approved", "rejected"},
			},
		},
		Required: []string{"stage"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	applicationID, _ := params["application_id"].(string)

	stage, _ := params["stage"].(string)
	if stage == "" {
		return nil, fmt.Errorf("move_to_stage requires a stage")
	}

	return &Action{
		applications:  f.applications,
		applicationID: applicationID,
		stage:         models.ApplicationStage(stage),
	}, nil
}

type Action struct {
	applications  persistence.ApplicationRepository
	applicationID string
	stage         models.ApplicationStage
}

func (a *Action) Execute(ctx context.Context, executionCtx models.ExecutionContext, logger *slog.Logger) (any, error) {
	applicationID := a.applicationID
	if applicationID == "" {
		applicationID, _ = executionCtx.Input["application_id"].(string)
	}

	if applicationID == "" {
		return nil, fmt.Errorf("move_to_stage has no application_id: neither parameters nor trigger payload carry one")
	}

	application, err := a.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application %s: %w", applicationID, err)
	}

	if application == nil {
		return nil, persistence.NewStoreError("move_to_stage", "aid_application", applicationID, persistence.ErrApplicationNotFound)
	}

	previousStage := application.Stage
	application.Stage = a.stage
	application.UpdatedAt = time.Now().UTC()

	err = a.applications.Save(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to update application %s: %w", applicationID, err)
	}

	logger.InfoContext(ctx, "Application stage changed",
		"action_type", "move_to_stage",
		"application_id", applicationID,
		"from", previousStage,
		"to", a.stage,
	)

	return map[string]any{
		"application_id": applicationID,
		"from":           string(previousStage),
		"to":             string(a.stage),
	}, nil
}
