// Package web provides the HTTP handlers for the automation API.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/registry"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/services"
)

const defaultAuditWindow = 30 * 24 * time.Hour

type APIHandlers struct {
	workflows     *services.WorkflowService
	notifications *services.NotificationService
	audit         *services.AuditService
	bulk          *services.BulkService
	reporting     *services.ReportingService
	persistence   persistence.Persistence
	registry      *registry.Registry
	validator     *validator.Validate
}

func NewAPIHandlers(
	workflows *services.WorkflowService,
	notifications *services.NotificationService,
	audit *services.AuditService,
	bulk *services.BulkService,
	reporting *services.ReportingService,
	store persistence.Persistence,
	reg *registry.Registry,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		workflows:     workflows,
		notifications: notifications,
		audit:         audit,
		bulk:          bulk,
		reporting:     reporting,
		persistence:   store,
		registry:      reg,
		validator:     validate,
	}
}

// actor builds the audit actor from request headers. Anonymous requests
// record as system changes.
func actor(c fiber.Ctx) services.Actor {
	return services.Actor{
		UserID:    c.Get("X-User-ID"),
		UserEmail: c.Get("X-User-Email"),
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	opts, err := h.parseListWorkflowsOptions(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.workflows.List(c.Context(), *opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows":     result.Workflows,
		"total_count":   result.TotalCount,
		"has_next_page": result.HasNextPage,
		"pagination": fiber.Map{
			"limit":  opts.Limit,
			"offset": opts.Offset,
		},
	})
}

func (h *APIHandlers) parseListWorkflowsOptions(c fiber.Ctx) (*persistence.ListWorkflowsOptions, error) {
	opts := &persistence.ListWorkflowsOptions{}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		opts.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}

		opts.Offset = offset
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.WorkflowStatus(statusStr)
		opts.Status = &status
	}

	if triggerStr := c.Query("trigger"); triggerStr != "" {
		trigger := models.WorkflowTrigger(triggerStr)
		opts.Trigger = &trigger
	}

	opts.SortBy = c.Query("sort_by")
	opts.SortOrder = c.Query("sort_order")

	return opts, nil
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflows.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.workflows.Create(c.Context(), actor(c), req.toModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.workflows.Update(c.Context(), actor(c), id, req.toModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	err := h.workflows.Delete(c.Context(), actor(c), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExecuteWorkflow runs a workflow manually. The response is the execution
// record whatever its outcome; only a missing workflow is an HTTP error.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	execution, err := h.workflows.Execute(c.Context(), actor(c), id, req.Input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetWorkflowExecutions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	limit := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid limit")
		}

		limit = parsed
	}

	executions, err := h.workflows.Executions(c.Context(), id, limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"executions": executions})
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	execution, err := h.workflows.ExecutionByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetWorkflowTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.workflows.Templates()})
}

func (h *APIHandlers) CreateWorkflowFromTemplate(c fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "Template key is required")
	}

	var req CreateFromTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	created, err := h.workflows.CreateFromTemplate(c.Context(), actor(c), key, req.Overrides)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetNotifications(c fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notifications.ListForUser(c.Context(), userID, unreadOnly)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *APIHandlers) MarkNotificationRead(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Notification ID is required")
	}

	err := h.notifications.MarkRead(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) MarkAllNotificationsRead(c fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	marked, err := h.notifications.MarkAllRead(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"marked": marked})
}

func (h *APIHandlers) GetAuditLogs(c fiber.Ctx) error {
	filter := persistence.AuditFilter{
		UserID:   c.Query("user_id"),
		Action:   models.AuditAction(c.Query("action")),
		Severity: models.AuditSeverity(c.Query("severity")),
		Resource: c.Query("resource"),
	}

	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return badRequest(c, "Invalid since timestamp, expected RFC3339")
		}

		filter.Since = since
	}

	if untilStr := c.Query("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return badRequest(c, "Invalid until timestamp, expected RFC3339")
		}

		filter.Until = until
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid limit")
		}

		filter.Limit = limit
	}

	entries, err := h.audit.List(c.Context(), filter)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"audit_logs": entries})
}

func (h *APIHandlers) GetAuditStats(c fiber.Ctx) error {
	since := time.Now().UTC().Add(-defaultAuditWindow)

	if sinceStr := c.Query("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return badRequest(c, "Invalid since timestamp, expected RFC3339")
		}

		since = parsed
	}

	stats, err := h.audit.Stats(c.Context(), since)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(stats)
}

func (h *APIHandlers) RunBulkOperation(c fiber.Ctx) error {
	var req services.BulkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	operation, err := h.bulk.Run(c.Context(), actor(c), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(operation)
}

func (h *APIHandlers) GetBulkOperation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Bulk operation ID is required")
	}

	operation := h.bulk.Get(id)
	if operation == nil {
		return notFound(c, "Bulk operation not found")
	}

	return c.JSON(operation)
}

func (h *APIHandlers) GetSummaryReport(c fiber.Ctx) error {
	report, err := h.reporting.Summary(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(report)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()

	repositoryCheck := "healthy"
	repOk := true

	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		repositoryCheck = err.Error()
		repOk = false
	}

	status := "unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
