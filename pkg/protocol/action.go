// Package protocol defines the contracts between the engine and action handlers.
package protocol

import (
	"context"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// Action is one executable workflow step. Execute returns the handler's
// result, which the engine records into the execution's output map.
type Action interface {
	Execute(ctx context.Context, executionCtx models.ExecutionContext, logger *slog.Logger) (any, error)
}

// ActionFactory builds actions of one type from a parameters map. Schema
// describes the expected parameters; a nil schema skips validation.
type ActionFactory interface {
	ID() string
	Schema() *models.JSONSchema
	Create(params map[string]any) (Action, error)
}
