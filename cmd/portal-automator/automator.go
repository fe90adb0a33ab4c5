package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/engine"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/eventbus"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/events"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/scheduler"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/services"
)

// Automator consumes domain events and fans each one out to the active
// workflows listening on its trigger.
type Automator struct {
	eventBus  eventbus.EventBus
	workflows *services.WorkflowService
	engine    *engine.Engine
	deadlines *scheduler.DeadlineScheduler
	logger    *slog.Logger
}

func NewAutomator(
	eventBus eventbus.EventBus,
	workflows *services.WorkflowService,
	eng *engine.Engine,
	deadlines *scheduler.DeadlineScheduler,
	logger *slog.Logger,
) *Automator {
	return &Automator{
		eventBus:  eventBus,
		workflows: workflows,
		engine:    eng,
		deadlines: deadlines,
		logger:    logger.With("module", "automator"),
	}
}

// Start subscribes to the event stream, starts the deadline scheduler and
// blocks until a termination signal or context cancellation.
func (a *Automator) Start(ctx context.Context, deadlineSchedule string) error {
	aCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.InfoContext(aCtx, "Starting automator")

	for _, eventType := range events.Types() {
		a.eventBus.Handle(eventType, a.handleEvent)
	}

	err := a.eventBus.Subscribe(aCtx)
	if err != nil {
		return err
	}

	err = a.deadlines.Start(aCtx, deadlineSchedule)
	if err != nil {
		return err
	}

	defer a.deadlines.Stop()

	a.handleSignals(cancel)

	<-aCtx.Done()
	a.logger.Info("Automator context cancelled, stopping...")

	return nil
}

func (a *Automator) handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		a.logger.Info("Received signal, shutting down gracefully...", "signal", sig)
		cancel()
	}()
}

// handleEvent runs every runnable workflow whose trigger matches the event.
// The engine absorbs per-workflow failures into execution records, so the
// whole fan-out acks unless the workflow listing itself fails.
func (a *Automator) handleEvent(ctx context.Context, event *events.DomainEvent) error {
	logger := a.logger.With("event_id", event.ID, "event_type", string(event.Type))

	trigger, ok := event.Type.Trigger()
	if !ok {
		logger.Warn("Event type has no workflow trigger, skipping")

		return nil
	}

	workflows, err := a.workflows.ActiveByTrigger(ctx, trigger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list workflows for trigger", "trigger", string(trigger), "error", err)

		return err
	}

	logger.InfoContext(ctx, "Dispatching event to workflows", "trigger", string(trigger), "count", len(workflows))

	for _, workflow := range workflows {
		execution := a.engine.Execute(ctx, workflow, event.Payload)

		logger.InfoContext(ctx, "Workflow executed",
			"workflow_id", workflow.ID,
			"execution_id", execution.ID,
			"status", string(execution.Status),
		)
	}

	return nil
}
