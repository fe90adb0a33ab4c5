package file

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

func newTestWorkflow(name string) *models.Workflow {
	return &models.Workflow{
		ID:      uuid.New().String(),
		Name:    name,
		Trigger: models.TriggerBeneficiaryCreated,
		Status:  models.WorkflowStatusActive,
		Actions: []models.WorkflowActionConfig{
			{Type: "notification", Parameters: map[string]any{"title": "hi"}},
		},
		IsEnabled: true,
	}
}

func TestWorkflowRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	workflow := newTestWorkflow("welcome")
	require.NoError(t, repo.Save(ctx, workflow))
	assert.False(t, workflow.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, workflow.Name, found.Name)
	assert.Equal(t, workflow.Trigger, found.Trigger)
}

func TestWorkflowRepository_GetMissingReturnsNil(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())

	found, err := repo.GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestWorkflowRepository_Delete(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	workflow := newTestWorkflow("doomed")
	require.NoError(t, repo.Save(ctx, workflow))
	require.NoError(t, repo.Delete(ctx, workflow.ID))

	found, err := repo.GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting a missing workflow is not an error.
	assert.NoError(t, repo.Delete(ctx, workflow.ID))
}

func TestWorkflowRepository_ListFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		workflow := newTestWorkflow("active")
		require.NoError(t, repo.Save(ctx, workflow))
	}

	inactive := newTestWorkflow("inactive")
	inactive.Status = models.WorkflowStatusInactive
	require.NoError(t, repo.Save(ctx, inactive))

	status := models.WorkflowStatusActive
	result, err := repo.List(ctx, persistence.ListWorkflowsOptions{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalCount)
	assert.Len(t, result.Workflows, 3)
	assert.False(t, result.HasNextPage)

	paged, err := repo.List(ctx, persistence.ListWorkflowsOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), paged.TotalCount)
	assert.Len(t, paged.Workflows, 2)
	assert.True(t, paged.HasNextPage)
}

func TestWorkflowRepository_ListRejectsUnknownSort(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())

	_, err := repo.List(context.Background(), persistence.ListWorkflowsOptions{SortBy: "execution_count; DROP TABLE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort field")
}

func TestWorkflowRepository_IncrementExecution(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	workflow := newTestWorkflow("counted")
	require.NoError(t, repo.Save(ctx, workflow))

	executedAt := time.Now().UTC()
	require.NoError(t, repo.IncrementExecution(ctx, workflow.ID, executedAt))

	found, err := repo.GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(1), found.ExecutionCount)
	require.NotNil(t, found.LastExecuted)
	assert.WithinDuration(t, executedAt, *found.LastExecuted, time.Second)
}

func TestWorkflowRepository_IncrementExecutionMissing(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())

	err := repo.IncrementExecution(context.Background(), "missing", time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

func TestWorkflowRepository_IncrementExecutionConcurrent(t *testing.T) {
	t.Parallel()

	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	workflow := newTestWorkflow("hot")
	require.NoError(t, repo.Save(ctx, workflow))

	const runs = 50

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, repo.IncrementExecution(ctx, workflow.ID, time.Now().UTC()))
		}()
	}

	wg.Wait()

	found, err := repo.GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(runs), found.ExecutionCount)
}

func TestExecutionRepository_ListByWorkflow(t *testing.T) {
	t.Parallel()

	repo := NewExecutionRepository(t.TempDir())
	ctx := context.Background()

	workflowID := uuid.New().String()

	for i := 0; i < 3; i++ {
		execution := &models.WorkflowExecution{
			ID:         uuid.New().String(),
			WorkflowID: workflowID,
			Trigger:    models.TriggerBeneficiaryCreated,
			Status:     models.ExecutionStatusSuccess,
			StartedAt:  time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Save(ctx, execution))
	}

	other := &models.WorkflowExecution{
		ID:         uuid.New().String(),
		WorkflowID: uuid.New().String(),
		Status:     models.ExecutionStatusFailed,
		StartedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, other))

	executions, err := repo.ListByWorkflow(ctx, workflowID, 0)
	require.NoError(t, err)
	require.Len(t, executions, 3)

	// Newest first.
	assert.True(t, executions[0].StartedAt.After(executions[2].StartedAt))

	limited, err := repo.ListByWorkflow(ctx, workflowID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	t.Parallel()

	repo := NewNotificationRepository(t.TempDir())
	ctx := context.Background()

	read := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Title:     "seen",
		IsRead:    true,
		CreatedAt: time.Now().UTC(),
	}
	unread := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Title:     "fresh",
		CreatedAt: time.Now().UTC().Add(time.Minute),
	}
	foreign := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    "user-2",
		Title:     "other",
		CreatedAt: time.Now().UTC(),
	}

	for _, notification := range []*models.Notification{read, unread, foreign} {
		require.NoError(t, repo.Save(ctx, notification))
	}

	all, err := repo.ListByUser(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unreadOnly, err := repo.ListByUser(ctx, "user-1", true)
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, "fresh", unreadOnly[0].Title)
}

func TestAuditRepository_ListFilters(t *testing.T) {
	t.Parallel()

	repo := NewAuditRepository(t.TempDir())
	ctx := context.Background()

	entries := []*models.AuditEntry{
		{
			ID:        uuid.New().String(),
			UserID:    "user-1",
			Action:    models.AuditWorkflowExecuted,
			Severity:  models.AuditSeverityInfo,
			Resource:  "workflow",
			Timestamp: time.Now().UTC(),
		},
		{
			ID:        uuid.New().String(),
			UserID:    "user-2",
			Action:    models.AuditTaskCreated,
			Severity:  models.AuditSeverityWarning,
			Resource:  "task",
			Timestamp: time.Now().UTC().Add(-time.Hour),
		},
	}

	for _, entry := range entries {
		require.NoError(t, repo.Append(ctx, entry))
	}

	byAction, err := repo.List(ctx, persistence.AuditFilter{Action: models.AuditWorkflowExecuted})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "user-1", byAction[0].UserID)

	bySeverity, err := repo.List(ctx, persistence.AuditFilter{Severity: models.AuditSeverityWarning})
	require.NoError(t, err)
	require.Len(t, bySeverity, 1)
	assert.Equal(t, models.AuditTaskCreated, bySeverity[0].Action)

	since, err := repo.List(ctx, persistence.AuditFilter{Since: time.Now().UTC().Add(-time.Minute)})
	require.NoError(t, err)
	assert.Len(t, since, 1)
}

func TestPersistence_HealthCheck(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())
	require.NoError(t, p.HealthCheck(context.Background()))
	require.NoError(t, p.Close(context.Background()))
}
