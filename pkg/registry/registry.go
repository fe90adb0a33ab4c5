// Package registry dispatches workflow actions to their registered factories.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

type Registry struct {
	logger          *slog.Logger
	actionFactories map[string]protocol.ActionFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:          logger,
		actionFactories: make(map[string]protocol.ActionFactory),
	}
}

func (r *Registry) RegisterAction(factory protocol.ActionFactory) {
	r.actionFactories[factory.ID()] = factory
}

// CreateAction builds an action of the given type. An unregistered type is a
// configuration error and names the offending type; it propagates up and is
// captured as the execution's error by the engine.
func (r *Registry) CreateAction(actionType string, params map[string]any) (protocol.Action, error) {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("unknown action type: %s", actionType)
	}

	return factory.Create(params)
}

// ValidateParameters checks an action's parameters against the factory's JSON
// schema before the workflow is stored. Factories without a schema accept
// anything.
func (r *Registry) ValidateParameters(actionType string, params map[string]any) error {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return fmt.Errorf("unknown action type: %s", actionType)
	}

	schema := factory.Schema()
	if schema == nil {
		return nil
	}

	if params == nil {
		params = map[string]any{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(params))
	if err != nil {
		return fmt.Errorf("failed to validate %s parameters: %w", actionType, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}

		return fmt.Errorf("invalid %s parameters: %s", actionType, strings.Join(details, "; "))
	}

	return nil
}

// AvailableActions returns the registered action types in stable order.
func (r *Registry) AvailableActions() []string {
	types := make([]string, 0, len(r.actionFactories))
	for actionType := range r.actionFactories {
		types = append(types, actionType)
	}

	sort.Strings(types)

	return types
}

func (r *Registry) HealthCheck() (string, bool) {
	if len(r.actionFactories) == 0 {
		return "No action factories registered", false
	}

	return fmt.Sprintf("%d action types registered", len(r.actionFactories)), true
}
