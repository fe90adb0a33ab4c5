package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cmd"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/engine"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/log"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence/file"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/services"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/web"
)

func setupTestApp(t *testing.T) (*fiber.App, persistence.Persistence) {
	t.Helper()

	logger := log.WithModule("web-test")
	store := file.NewPersistence(t.TempDir())
	registry := cmd.NewRegistry(logger, store, nil)

	audit := services.NewAuditService(store, logger)
	eng := engine.NewEngine(logger, registry, store)
	workflows := services.NewWorkflowService(store, registry, eng, audit, logger)
	notifications := services.NewNotificationService(store, logger)
	bulk := services.NewBulkService(store, audit, logger)
	reporting := services.NewReportingService(store, nil, logger)

	handlers := web.NewAPIHandlers(
		workflows,
		notifications,
		audit,
		bulk,
		reporting,
		store,
		registry,
		validator.New(validator.WithRequiredStructEnabled()),
	)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/execute", handlers.ExecuteWorkflow)
	w.Get("/:id/executions", handlers.GetWorkflowExecutions)

	app.Get("/executions/:id", handlers.GetExecution)
	app.Get("/workflow-templates", handlers.GetWorkflowTemplates)
	app.Post("/workflow-templates/:key", handlers.CreateWorkflowFromTemplate)

	n := app.Group("/notifications")
	n.Get("/", handlers.GetNotifications)
	n.Post("/read-all", handlers.MarkAllNotificationsRead)
	n.Post("/:id/read", handlers.MarkNotificationRead)

	app.Get("/audit-logs", handlers.GetAuditLogs)
	app.Get("/audit-logs/stats", handlers.GetAuditStats)
	app.Post("/bulk-operations", handlers.RunBulkOperation)
	app.Get("/bulk-operations/:id", handlers.GetBulkOperation)
	app.Get("/reports/summary", handlers.GetSummaryReport)
	app.Get("/health", handlers.HealthCheck)

	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body []byte

	if payload != nil {
		if str, ok := payload.(string); ok {
			body = []byte(str)
		} else {
			var err error

			body, err = json.Marshal(payload)
			require.NoError(t, err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "tester-1")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func validCreateRequest() web.CreateWorkflowRequest {
	return web.CreateWorkflowRequest{
		Name:        "Welcome new beneficiaries",
		Description: "Creates an onboarding task",
		Trigger:     models.TriggerBeneficiaryCreated,
		Actions: []models.WorkflowActionConfig{
			{Type: "create_task", Parameters: map[string]any{"title": "Onboard beneficiary"}},
		},
		Status:    models.WorkflowStatusActive,
		IsEnabled: true,
	}
}

func TestAPIHandlers_CreateWorkflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
	}{
		{
			name:           "successful creation",
			requestBody:    validCreateRequest(),
			expectedStatus: http.StatusCreated,
		},
		{
			name: "validation error - name too short",
			requestBody: web.CreateWorkflowRequest{
				Name:    "Te",
				Trigger: models.TriggerCustom,
				Actions: []models.WorkflowActionConfig{
					{Type: "create_task", Parameters: map[string]any{"title": "x"}},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation error - no actions",
			requestBody: web.CreateWorkflowRequest{
				Name:    "No actions here",
				Trigger: models.TriggerCustom,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation error - unknown action type",
			requestBody: web.CreateWorkflowRequest{
				Name:    "Unknown action",
				Trigger: models.TriggerCustom,
				Actions: []models.WorkflowActionConfig{
					{Type: "launch_rocket", Parameters: map[string]any{}},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, _ := setupTestApp(t)

			resp, raw := doJSON(t, app, http.MethodPost, "/workflows", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var workflow models.Workflow

				require.NoError(t, json.Unmarshal(raw, &workflow))
				assert.NotEmpty(t, workflow.ID)
				assert.Equal(t, "tester-1", workflow.CreatedBy)
			}
		})
	}
}

func TestAPIHandlers_WorkflowLifecycle(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/workflows", validCreateRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw = doJSON(t, app, http.MethodGet, "/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Workflow
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created.Name, fetched.Name)

	update := validCreateRequest()
	update.Name = "Welcome new beneficiaries v2"

	resp, raw = doJSON(t, app, http.MethodPatch, "/workflows/"+created.ID, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Workflow
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Welcome new beneficiaries v2", updated.Name)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)

	resp, _ = doJSON(t, app, http.MethodGet, "/workflows/?status=active", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/workflows/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_ExecuteWorkflow(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/workflows", validCreateRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw = doJSON(t, app, http.MethodPost, "/workflows/"+created.ID+"/execute", web.ExecuteWorkflowRequest{
		Input: map[string]any{"beneficiary_id": "ben-1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var execution models.WorkflowExecution
	require.NoError(t, json.Unmarshal(raw, &execution))
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.NotEmpty(t, execution.ID)

	resp, raw = doJSON(t, app, http.MethodGet, "/workflows/"+created.ID+"/executions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Executions []*models.WorkflowExecution `json:"executions"`
	}

	require.NoError(t, json.Unmarshal(raw, &listing))
	require.Len(t, listing.Executions, 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/executions/"+execution.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/workflows/missing/execute", web.ExecuteWorkflowRequest{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_Templates(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/workflow-templates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Templates []models.WorkflowTemplate `json:"templates"`
	}

	require.NoError(t, json.Unmarshal(raw, &listing))
	assert.NotEmpty(t, listing.Templates)

	resp, raw = doJSON(t, app, http.MethodPost, "/workflow-templates/"+listing.Templates[0].Key, web.CreateFromTemplateRequest{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, models.WorkflowStatusDraft, created.Status)

	resp, _ = doJSON(t, app, http.MethodPost, "/workflow-templates/nope", web.CreateFromTemplateRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_Notifications(t *testing.T) {
	t.Parallel()

	app, store := setupTestApp(t)

	require.NoError(t, store.Notifications().Save(t.Context(), &models.Notification{
		ID:        "notif-1",
		UserID:    "user-1",
		Title:     "Welcome",
		CreatedAt: time.Now().UTC(),
	}))

	resp, raw := doJSON(t, app, http.MethodGet, "/notifications/?user_id=user-1&unread=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Notifications []*models.Notification `json:"notifications"`
	}

	require.NoError(t, json.Unmarshal(raw, &listing))
	require.Len(t, listing.Notifications, 1)

	resp, _ = doJSON(t, app, http.MethodPost, "/notifications/notif-1/read", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/notifications/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/notifications/", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_BulkAndReports(t *testing.T) {
	t.Parallel()

	app, store := setupTestApp(t)

	require.NoError(t, store.Tasks().Save(t.Context(), &models.Task{
		ID:     "task-1",
		Title:  "Archive me",
		Status: models.TaskStatusPending,
	}))

	resp, raw := doJSON(t, app, http.MethodPost, "/bulk-operations", services.BulkRequest{
		EntityType: models.BulkEntityTask,
		Action:     models.BulkActionArchive,
		EntityIDs:  []string{"task-1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var operation models.BulkOperation
	require.NoError(t, json.Unmarshal(raw, &operation))
	assert.Equal(t, 1, operation.Succeeded)

	resp, _ = doJSON(t, app, http.MethodGet, "/bulk-operations/"+operation.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/bulk-operations/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/reports/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report services.SummaryReport
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, int64(1), report.TasksByStatus[string(models.TaskStatusPending)])
}

func TestAPIHandlers_AuditLogs(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/workflows", validCreateRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/audit-logs?user_id=tester-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		AuditLogs []*models.AuditEntry `json:"audit_logs"`
	}

	require.NoError(t, json.Unmarshal(raw, &listing))
	require.NotEmpty(t, listing.AuditLogs)
	assert.Equal(t, models.AuditWorkflowCreated, listing.AuditLogs[0].Action)

	resp, raw = doJSON(t, app, http.MethodGet, "/audit-logs/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats services.AuditStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, int64(1), stats.ByAction[string(models.AuditWorkflowCreated)])

	resp, _ = doJSON(t, app, http.MethodGet, "/audit-logs?since=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "healthy", payload["status"])
}
