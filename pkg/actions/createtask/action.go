// Package createtask implements the create_task workflow action.
package createtask

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

type Factory struct {
	tasks persistence.TaskRepository
}

func NewFactory(tasks persistence.TaskRepository) *Factory {
	return &Factory{tasks: tasks}
}

func (*Factory) ID() string {
	return "create_task"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"title":       {Type: "string"},
			"description": {Type: "string", Description: "Falls back to the trigger payload's description when omitted"},
			"assigned_to": {Type: "string"},
			"priority": {
				Type:    "string",
				Enum:    []any{"low", "normal", "high", "urgent"},
				Default: "normal",
			},
			"due_in_days": {Type: "number", Description: "Sets the due date this many days from execution"},
		},
		Required: []string{"title"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	title, _ := params["title"].(string)
	if title == "" {
		return nil, fmt.Errorf("create_task requires a title")
	}

	description, _ := params["description"].(string)
	assignedTo, _ := params["assigned_to"].(string)

	priority, _ := params["priority"].(string)
	if priority == "" {
		priority = string(models.TaskPriorityNormal)
	}

	dueInDays, _ := params["due_in_days"].(float64)

	return &Action{
		tasks:       f.tasks,
		title:       title,
		description: description,
		assignedTo:  assignedTo,
		priority:    models.TaskPriority(priority),
		dueInDays:   int(dueInDays),
	}, nil
}

type Action struct {
	tasks       persistence.TaskRepository
	title       string
	description string
	assignedTo  string
	priority    models.TaskPriority
	dueInDays   int
}

func (a *Action) Execute(ctx context.Context, executionCtx models.ExecutionContext, logger *slog.Logger) (any, error) {
	logger = logger.With("action_type", "create_task")

	description := a.description
	if description == "" {
		description, _ = executionCtx.Input["description"].(string)
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       a.title,
		Description: description,
		AssignedTo:  a.assignedTo,
		Priority:    a.priority,
		Status:      models.TaskStatusPending,
		CreatedBy:   "automation:" + executionCtx.WorkflowID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if a.dueInDays > 0 {
		dueDate := now.AddDate(0, 0, a.dueInDays)
		task.DueDate = &dueDate
	}

	err := a.tasks.Save(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "title", task.Title)

	return map[string]any{
		"task_id":     task.ID,
		"title":       task.Title,
		"assigned_to": task.AssignedTo,
	}, nil
}
