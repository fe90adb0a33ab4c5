// Package file provides file-backed persistence, one JSON document per record.
// It is the development and test backend; production deployments use the
// postgresql package.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// Persistence stores every collection under a common root directory.
type Persistence struct {
	root          string
	workflows     *WorkflowRepository
	executions    *ExecutionRepository
	tasks         *TaskRepository
	meetings      *MeetingRepository
	applications  *ApplicationRepository
	notifications *NotificationRepository
	auditLogs     *AuditRepository
}

// NewPersistence creates a file persistence layer rooted at the given path.
func NewPersistence(root string) *Persistence {
	return &Persistence{
		root:          root,
		workflows:     NewWorkflowRepository(root),
		executions:    NewExecutionRepository(root),
		tasks:         NewTaskRepository(root),
		meetings:      NewMeetingRepository(root),
		applications:  NewApplicationRepository(root),
		notifications: NewNotificationRepository(root),
		auditLogs:     NewAuditRepository(root),
	}
}

func (p *Persistence) Workflows() persistence.WorkflowRepository         { return p.workflows }
func (p *Persistence) Executions() persistence.ExecutionRepository       { return p.executions }
func (p *Persistence) Tasks() persistence.TaskRepository                 { return p.tasks }
func (p *Persistence) Meetings() persistence.MeetingRepository           { return p.meetings }
func (p *Persistence) Applications() persistence.ApplicationRepository   { return p.applications }
func (p *Persistence) Notifications() persistence.NotificationRepository { return p.notifications }
func (p *Persistence) AuditLogs() persistence.AuditRepository            { return p.auditLogs }

// HealthCheck verifies the root directory exists and is writable.
func (p *Persistence) HealthCheck(_ context.Context) error {
	err := os.MkdirAll(p.root, 0750)
	if err != nil {
		return fmt.Errorf("storage root %s is not usable: %w", p.root, err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}
