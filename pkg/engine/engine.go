// Package engine runs workflows: evaluate conditions, execute actions in
// order, record one execution per invocation.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/conditions"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/otelhelper"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/registry"
)

// ConditionsNotMetError is the fixed error string recorded when a workflow's
// conditions evaluate to false. Callers rely on it to tell the gated case
// apart from a genuine action failure.
const ConditionsNotMetError = "Conditions not met"

// Engine executes workflows. It is the error boundary for a single run:
// action failures never propagate to the caller, they are recorded on the
// returned execution instead.
type Engine struct {
	logger      *slog.Logger
	registry    *registry.Registry
	persistence persistence.Persistence
	tracer      trace.Tracer
	timeout     time.Duration
}

type Option func(*Engine)

// WithTimeout bounds a single execution. Zero means no deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

// WithTracer attaches an OpenTelemetry tracer to executions.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func NewEngine(logger *slog.Logger, reg *registry.Registry, store persistence.Persistence, opts ...Option) *Engine {
	engine := &Engine{
		logger:      logger,
		registry:    reg,
		persistence: store,
		tracer:      noop.NewTracerProvider().Tracer("engine"),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Execute runs one workflow against a trigger payload and returns the
// execution record. The record is also persisted; a storage failure there is
// logged but does not change the outcome.
func (e *Engine) Execute(ctx context.Context, workflow *models.Workflow, input map[string]any) *models.WorkflowExecution {
	execution := &models.WorkflowExecution{
		ID:         uuid.New().String(),
		WorkflowID: workflow.ID,
		Trigger:    workflow.Trigger,
		Status:     models.ExecutionStatusPending,
		StartedAt:  time.Now().UTC(),
		Input:      input,
	}

	logger := e.logger.With(
		"workflow_id", workflow.ID,
		"execution_id", execution.ID,
		"trigger", workflow.Trigger,
	)

	if e.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.execute",
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.WorkflowNameKey, workflow.Name),
		attribute.String(otelhelper.TriggerTypeKey, string(workflow.Trigger)),
		attribute.String(otelhelper.ExecutionIDKey, execution.ID),
	)
	defer span.End()

	e.run(ctx, workflow, execution, logger)

	completedAt := time.Now().UTC()
	execution.CompletedAt = &completedAt

	span.SetAttributes(attribute.String("portal.execution.status", string(execution.Status)))

	if execution.Status == models.ExecutionStatusFailed {
		otelhelper.SetError(span, fmt.Errorf("%s", execution.Error))
	}

	// The record must survive even when the run itself timed out, so the save
	// is detached from the execution deadline.
	err := e.persistence.Executions().Save(context.WithoutCancel(ctx), execution)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to persist execution record", "error", err)
	}

	logger.InfoContext(ctx, "Workflow execution finished", "status", execution.Status)

	return execution
}

func (e *Engine) run(ctx context.Context, workflow *models.Workflow, execution *models.WorkflowExecution, logger *slog.Logger) {
	if !workflow.Runnable() {
		execution.Status = models.ExecutionStatusSkipped
		execution.Error = fmt.Sprintf("workflow is not runnable: status=%s enabled=%t", workflow.Status, workflow.IsEnabled)

		logger.InfoContext(ctx, "Workflow skipped", "status", workflow.Status, "enabled", workflow.IsEnabled)

		return
	}

	if !conditions.Evaluate(workflow.Conditions, execution.Input) {
		execution.Status = models.ExecutionStatusFailed
		execution.Error = ConditionsNotMetError

		logger.InfoContext(ctx, "Workflow conditions not met")

		return
	}

	executionCtx := models.ExecutionContext{
		ID:          execution.ID,
		WorkflowID:  workflow.ID,
		Trigger:     workflow.Trigger,
		Input:       execution.Input,
		StepResults: make(map[string]any),
	}

	output := make(map[string]any, len(workflow.Actions))

	for index, actionConfig := range workflow.Actions {
		if err := ctx.Err(); err != nil {
			execution.Status = models.ExecutionStatusFailed
			execution.Error = fmt.Sprintf("execution aborted before action %d (%s): %v", index, actionConfig.Type, err)
			execution.Output = output

			return
		}

		result, err := e.runAction(ctx, index, actionConfig, executionCtx, logger)
		if err != nil {
			execution.Status = models.ExecutionStatusFailed
			execution.Error = err.Error()
			execution.Output = output

			logger.WarnContext(ctx, "Action failed, aborting remaining actions",
				"action_index", index,
				"action_type", actionConfig.Type,
				"error", err,
			)

			return
		}

		// Keyed by index and type so two actions of the same type keep
		// separate result slots.
		key := fmt.Sprintf("%d:%s", index, actionConfig.Type)
		output[key] = result
		executionCtx.StepResults[key] = result
	}

	execution.Status = models.ExecutionStatusSuccess
	execution.Output = output

	err := e.persistence.Workflows().IncrementExecution(ctx, workflow.ID, time.Now().UTC())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to increment execution counter", "error", err)
	}
}

func (e *Engine) runAction(ctx context.Context, index int, actionConfig models.WorkflowActionConfig, executionCtx models.ExecutionContext, logger *slog.Logger) (result any, err error) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.action",
		attribute.String(otelhelper.ActionTypeKey, actionConfig.Type),
		attribute.Int(otelhelper.ActionIndexKey, index),
	)
	defer span.End()

	// A panicking handler must not take the engine down with it.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("action %s panicked: %v", actionConfig.Type, recovered)
			otelhelper.SetError(span, err)
		}
	}()

	action, err := e.registry.CreateAction(actionConfig.Type, actionConfig.Parameters)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	result, err = action.Execute(ctx, executionCtx, logger)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	return result, nil
}
