// Package postgresql provides the PostgreSQL persistence backend.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger

	workflows     *WorkflowRepository
	executions    *ExecutionRepository
	tasks         *TaskRepository
	meetings      *MeetingRepository
	applications  *ApplicationRepository
	notifications *NotificationRepository
	auditLogs     *AuditRepository
}

// NewPersistence connects to PostgreSQL and runs pending migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:            database,
		logger:        logger,
		workflows:     NewWorkflowRepository(database, logger),
		executions:    NewExecutionRepository(database, logger),
		tasks:         NewTaskRepository(database),
		meetings:      NewMeetingRepository(database),
		applications:  NewApplicationRepository(database),
		notifications: NewNotificationRepository(database),
		auditLogs:     NewAuditRepository(database),
	}, nil
}

func (p *Persistence) Workflows() persistence.WorkflowRepository         { return p.workflows }
func (p *Persistence) Executions() persistence.ExecutionRepository       { return p.executions }
func (p *Persistence) Tasks() persistence.TaskRepository                 { return p.tasks }
func (p *Persistence) Meetings() persistence.MeetingRepository           { return p.meetings }
func (p *Persistence) Applications() persistence.ApplicationRepository   { return p.applications }
func (p *Persistence) Notifications() persistence.NotificationRepository { return p.notifications }
func (p *Persistence) AuditLogs() persistence.AuditRepository            { return p.auditLogs }

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
