// Package scheduler scans for tasks approaching their due date and publishes
// deadline events for the automation worker.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/eventbus"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/events"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// DeadlineScheduler periodically publishes a deadline.approaching event for
// every open task due within the configured window.
type DeadlineScheduler struct {
	cron       *cron.Cron
	tasks      persistence.TaskRepository
	publisher  eventbus.EventPublisher
	logger     *slog.Logger
	windowDays int
}

func NewDeadlineScheduler(logger *slog.Logger, tasks persistence.TaskRepository, publisher eventbus.EventPublisher, windowDays int) *DeadlineScheduler {
	if windowDays <= 0 {
		windowDays = 3
	}

	return &DeadlineScheduler{
		cron:       cron.New(),
		tasks:      tasks,
		publisher:  publisher,
		logger:     logger.With("module", "deadline_scheduler"),
		windowDays: windowDays,
	}
}

// Start schedules the scan with a cron spec (e.g. "@hourly") and begins
// running.
func (s *DeadlineScheduler) Start(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		err := s.Scan(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "Deadline scan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Deadline scheduler started", "schedule", spec, "window_days", s.windowDays)

	return nil
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *DeadlineScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Scan publishes one event per open task whose due date falls inside the
// window. Overdue tasks are included with a non-positive days_until_due.
func (s *DeadlineScheduler) Scan(ctx context.Context) error {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks for deadline scan: %w", err)
	}

	now := time.Now().UTC()
	published := 0

	for _, task := range tasks {
		if !dueSoon(task, now, s.windowDays) {
			continue
		}

		daysUntilDue := int(task.DueDate.Sub(now).Hours() / 24)

		event := events.NewDomainEvent(events.DeadlineApproachingEvent, map[string]any{
			"task_id":        task.ID,
			"title":          task.Title,
			"user_id":        task.AssignedTo,
			"due_date":       task.DueDate.Format(time.RFC3339),
			"days_until_due": daysUntilDue,
		})

		err = s.publisher.Publish(ctx, task.ID, event)
		if err != nil {
			return fmt.Errorf("failed to publish deadline event for task %s: %w", task.ID, err)
		}

		published++
	}

	s.logger.InfoContext(ctx, "Deadline scan completed", "tasks_scanned", len(tasks), "events_published", published)

	return nil
}

func dueSoon(task *models.Task, now time.Time, windowDays int) bool {
	if task.DueDate == nil || task.Archived {
		return false
	}

	if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusCancelled {
		return false
	}

	return task.DueDate.Before(now.AddDate(0, 0, windowDays))
}
