package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence/postgresql"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"audit_logs", "notifications", "aid_applications", "meetings", "tasks", "workflow_executions", "workflows", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("portal_test"),
			postgres.WithUsername("portal"),
			postgres.WithPassword("portal"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = p.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return p, ctx
}

func testWorkflow(name string) *models.Workflow {
	return &models.Workflow{
		ID:      uuid.New().String(),
		Name:    name,
		Trigger: models.TriggerDonationReceived,
		Conditions: []models.WorkflowCondition{
			{Field: "amount", Operator: models.OperatorGreaterThan, Value: 100},
		},
		Actions: []models.WorkflowActionConfig{
			{Type: "send_email", Parameters: map[string]any{"to": "donor@example.org"}},
		},
		Status:    models.WorkflowStatusActive,
		IsEnabled: true,
	}
}

func TestWorkflowRepository_Lifecycle(t *testing.T) {
	p, ctx := setupTestDB(t)

	workflow := testWorkflow("Donation Receipt")
	require.NoError(t, p.Workflows().Save(ctx, workflow))

	found, err := p.Workflows().GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, workflow.Name, found.Name)
	require.Len(t, found.Conditions, 1)
	assert.Equal(t, models.OperatorGreaterThan, found.Conditions[0].Operator)
	require.Len(t, found.Actions, 1)
	assert.Equal(t, "send_email", found.Actions[0].Type)

	found.Name = "Donation Receipt v2"
	require.NoError(t, p.Workflows().Save(ctx, found))

	updated, err := p.Workflows().GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Donation Receipt v2", updated.Name)

	require.NoError(t, p.Workflows().Delete(ctx, workflow.ID))

	gone, err := p.Workflows().GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestWorkflowRepository_ListAndFilter(t *testing.T) {
	p, ctx := setupTestDB(t)

	active := testWorkflow("Active A")
	require.NoError(t, p.Workflows().Save(ctx, active))

	inactive := testWorkflow("Inactive B")
	inactive.Status = models.WorkflowStatusInactive
	require.NoError(t, p.Workflows().Save(ctx, inactive))

	status := models.WorkflowStatusActive
	result, err := p.Workflows().List(ctx, persistence.ListWorkflowsOptions{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Workflows, 1)
	assert.Equal(t, "Active A", result.Workflows[0].Name)

	_, err = p.Workflows().List(ctx, persistence.ListWorkflowsOptions{SortBy: "status; DROP TABLE workflows"})
	require.Error(t, err)
}

func TestWorkflowRepository_IncrementExecution(t *testing.T) {
	p, ctx := setupTestDB(t)

	workflow := testWorkflow("Counted")
	require.NoError(t, p.Workflows().Save(ctx, workflow))

	executedAt := time.Now().UTC()
	require.NoError(t, p.Workflows().IncrementExecution(ctx, workflow.ID, executedAt))
	require.NoError(t, p.Workflows().IncrementExecution(ctx, workflow.ID, executedAt))

	found, err := p.Workflows().GetByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ExecutionCount)
	require.NotNil(t, found.LastExecuted)

	err = p.Workflows().IncrementExecution(ctx, uuid.New().String(), executedAt)
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

func TestExecutionRepository_SaveAndList(t *testing.T) {
	p, ctx := setupTestDB(t)

	workflow := testWorkflow("Executed")
	require.NoError(t, p.Workflows().Save(ctx, workflow))

	completedAt := time.Now().UTC()
	execution := &models.WorkflowExecution{
		ID:          uuid.New().String(),
		WorkflowID:  workflow.ID,
		Trigger:     workflow.Trigger,
		Status:      models.ExecutionStatusSuccess,
		StartedAt:   completedAt.Add(-time.Second),
		CompletedAt: &completedAt,
		Input:       map[string]any{"amount": 250.0},
		Output:      map[string]any{"0:send_email": map[string]any{"sent": true}},
	}
	require.NoError(t, p.Executions().Save(ctx, execution))

	found, err := p.Executions().GetByID(ctx, execution.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.ExecutionStatusSuccess, found.Status)
	assert.Equal(t, 250.0, found.Input["amount"])
	require.NotNil(t, found.CompletedAt)

	listed, err := p.Executions().ListByWorkflow(ctx, workflow.ID, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRecordRepositories_RoundTrip(t *testing.T) {
	p, ctx := setupTestDB(t)

	task := &models.Task{
		ID:       uuid.New().String(),
		Title:    "Prepare welcome kit",
		Priority: models.TaskPriorityHigh,
		Status:   models.TaskStatusPending,
	}
	require.NoError(t, p.Tasks().Save(ctx, task))

	foundTask, err := p.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, foundTask)
	assert.Equal(t, models.TaskPriorityHigh, foundTask.Priority)

	notification := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Title:     "New application",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, p.Notifications().Save(ctx, notification))

	unread, err := p.Notifications().ListByUser(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestAuditRepository_AppendAndFilter(t *testing.T) {
	p, ctx := setupTestDB(t)

	entry := &models.AuditEntry{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Action:    models.AuditWorkflowExecuted,
		Severity:  models.AuditSeverityInfo,
		Resource:  "workflow",
		Details:   map[string]any{"workflow_id": "wf-1"},
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, p.AuditLogs().Append(ctx, entry))

	entries, err := p.AuditLogs().List(ctx, persistence.AuditFilter{Action: models.AuditWorkflowExecuted})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wf-1", entries[0].Details["workflow_id"])
}

func TestPersistence_HealthCheck(t *testing.T) {
	p, ctx := setupTestDB(t)

	require.NoError(t, p.HealthCheck(ctx))
}
