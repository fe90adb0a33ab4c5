package file

import (
	"context"
	"sort"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// ExecutionRepository stores workflow execution records.
type ExecutionRepository struct {
	records *collection[models.WorkflowExecution]
}

func NewExecutionRepository(root string) *ExecutionRepository {
	return &ExecutionRepository{records: newCollection[models.WorkflowExecution](root, "executions")}
}

func (er *ExecutionRepository) Save(_ context.Context, execution *models.WorkflowExecution) error {
	return er.records.save(execution.ID, execution)
}

func (er *ExecutionRepository) GetByID(_ context.Context, id string) (*models.WorkflowExecution, error) {
	return er.records.get(id)
}

func (er *ExecutionRepository) ListByWorkflow(_ context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error) {
	all, err := er.records.list()
	if err != nil {
		return nil, err
	}

	executions := make([]*models.WorkflowExecution, 0)

	for _, execution := range all {
		if execution.WorkflowID == workflowID {
			executions = append(executions, execution)
		}
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartedAt.After(executions[j].StartedAt)
	})

	if limit > 0 && len(executions) > limit {
		executions = executions[:limit]
	}

	return executions, nil
}

// TaskRepository stores task records.
type TaskRepository struct {
	records *collection[models.Task]
}

func NewTaskRepository(root string) *TaskRepository {
	return &TaskRepository{records: newCollection[models.Task](root, "tasks")}
}

func (tr *TaskRepository) Save(_ context.Context, task *models.Task) error {
	return tr.records.save(task.ID, task)
}

func (tr *TaskRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	return tr.records.get(id)
}

func (tr *TaskRepository) Delete(_ context.Context, id string) error {
	return tr.records.delete(id)
}

func (tr *TaskRepository) List(_ context.Context) ([]*models.Task, error) {
	return tr.records.list()
}

// MeetingRepository stores meeting records.
type MeetingRepository struct {
	records *collection[models.Meeting]
}

func NewMeetingRepository(root string) *MeetingRepository {
	return &MeetingRepository{records: newCollection[models.Meeting](root, "meetings")}
}

func (mr *MeetingRepository) Save(_ context.Context, meeting *models.Meeting) error {
	return mr.records.save(meeting.ID, meeting)
}

func (mr *MeetingRepository) GetByID(_ context.Context, id string) (*models.Meeting, error) {
	return mr.records.get(id)
}

func (mr *MeetingRepository) Delete(_ context.Context, id string) error {
	return mr.records.delete(id)
}

func (mr *MeetingRepository) List(_ context.Context) ([]*models.Meeting, error) {
	return mr.records.list()
}

// ApplicationRepository stores aid application records.
type ApplicationRepository struct {
	records *collection[models.AidApplication]
}

func NewApplicationRepository(root string) *ApplicationRepository {
	return &ApplicationRepository{records: newCollection[models.AidApplication](root, "aid_applications")}
}

func (ar *ApplicationRepository) Save(_ context.Context, application *models.AidApplication) error {
	return ar.records.save(application.ID, application)
}

func (ar *ApplicationRepository) GetByID(_ context.Context, id string) (*models.AidApplication, error) {
	return ar.records.get(id)
}

func (ar *ApplicationRepository) Delete(_ context.Context, id string) error {
	return ar.records.delete(id)
}

func (ar *ApplicationRepository) List(_ context.Context) ([]*models.AidApplication, error) {
	return ar.records.list()
}

// NotificationRepository stores in-app notifications.
type NotificationRepository struct {
	records *collection[models.Notification]
}

func NewNotificationRepository(root string) *NotificationRepository {
	return &NotificationRepository{records: newCollection[models.Notification](root, "notifications")}
}

func (nr *NotificationRepository) Save(_ context.Context, notification *models.Notification) error {
	return nr.records.save(notification.ID, notification)
}

func (nr *NotificationRepository) GetByID(_ context.Context, id string) (*models.Notification, error) {
	return nr.records.get(id)
}

func (nr *NotificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	all, err := nr.records.list()
	if err != nil {
		return nil, err
	}

	notifications := make([]*models.Notification, 0)

	for _, notification := range all {
		if notification.UserID != userID {
			continue
		}

		if unreadOnly && notification.IsRead {
			continue
		}

		notifications = append(notifications, notification)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}
