// Package main provides the portal automation API server.
package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cache"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/engine"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/registry"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/services"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/web"
)

const executionTimeout = 2 * time.Minute

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	reportCache *cache.Cache
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	store persistence.Persistence,
	reg *registry.Registry,
	reportCache *cache.Cache,
) *API {
	return &API{
		logger:      logger,
		persistence: store,
		registry:    reg,
		reportCache: reportCache,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	auditService := services.NewAuditService(a.persistence, a.logger)
	eng := engine.NewEngine(a.logger, a.registry, a.persistence, engine.WithTimeout(executionTimeout))
	workflowService := services.NewWorkflowService(a.persistence, a.registry, eng, auditService, a.logger)
	notificationService := services.NewNotificationService(a.persistence, a.logger)
	bulkService := services.NewBulkService(a.persistence, auditService, a.logger)
	reportingService := services.NewReportingService(a.persistence, a.reportCache, a.logger)

	handlers := web.NewAPIHandlers(
		workflowService,
		notificationService,
		auditService,
		bulkService,
		reportingService,
		a.persistence,
		a.registry,
		a.validate,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Portal Automation API")
	})

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

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
