package scheduler_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/eventbus"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/events"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence/file"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/scheduler"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event.(events.DomainEvent))

	return nil
}

func (p *capturePublisher) published() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]events.DomainEvent(nil), p.events...)
}

func TestDeadlineScheduler_Scan(t *testing.T) {
	t.Parallel()

	persist := file.NewPersistence(t.TempDir())
	defer persist.Close(context.Background())

	tasks := persist.Tasks()
	now := time.Now().UTC()

	save := func(id, title string, due *time.Time, status models.TaskStatus, archived bool) {
		require.NoError(t, tasks.Save(t.Context(), &models.Task{
			ID:         id,
			Title:      title,
			AssignedTo: "user-1",
			Status:     status,
			DueDate:    due,
			Archived:   archived,
			CreatedAt:  now,
		}))
	}

	soon := now.Add(24 * time.Hour)
	overdue := now.Add(-24 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)

	save("task-due-soon", "Review application", &soon, models.TaskStatusPending, false)
	save("task-overdue", "Call donor", &overdue, models.TaskStatusInProgress, false)
	save("task-far-out", "Annual report", &far, models.TaskStatusPending, false)
	save("task-completed", "Done already", &soon, models.TaskStatusCompleted, false)
	save("task-archived", "Old one", &soon, models.TaskStatusPending, true)
	save("task-no-due", "Whenever", nil, models.TaskStatusPending, false)

	publisher := &capturePublisher{}
	sched := scheduler.NewDeadlineScheduler(slog.Default(), tasks, publisher, 3)

	require.NoError(t, sched.Scan(t.Context()))

	got := publisher.published()
	require.Len(t, got, 2)

	byTask := map[string]events.DomainEvent{}
	for _, event := range got {
		assert.Equal(t, events.DeadlineApproachingEvent, event.Type)
		byTask[event.Payload["task_id"].(string)] = event
	}

	require.Contains(t, byTask, "task-due-soon")
	require.Contains(t, byTask, "task-overdue")

	assert.Equal(t, 0, byTask["task-due-soon"].Payload["days_until_due"])
	assert.Equal(t, -1, byTask["task-overdue"].Payload["days_until_due"])
	assert.Equal(t, "user-1", byTask["task-due-soon"].Payload["user_id"])
}
