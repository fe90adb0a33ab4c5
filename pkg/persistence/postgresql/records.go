package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// The secondary record tables store each row as a JSONB document. The portal
// owns the canonical shapes of these records; the automation engine only reads
// and writes them through action handlers, so the schema stays loose on
// purpose.

func docSave(ctx context.Context, db *sql.DB, table, id string, record any) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", table, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
	`, table)

	_, err = db.ExecContext(ctx, query, id, doc)
	if err != nil {
		return fmt.Errorf("failed to save %s record: %w", table, err)
	}

	return nil
}

func docGet[T any](ctx context.Context, db *sql.DB, table, id string) (*T, error) {
	var doc []byte

	query := fmt.Sprintf("SELECT doc FROM %s WHERE id = $1", table)

	err := db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query %s record: %w", table, err)
	}

	var record T

	err = json.Unmarshal(doc, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s record: %w", table, err)
	}

	return &record, nil
}

func docDelete(ctx context.Context, db *sql.DB, table, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	_, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s record: %w", table, err)
	}

	return nil
}

func docList[T any](ctx context.Context, db *sql.DB, table string) ([]*T, error) {
	query := fmt.Sprintf("SELECT doc FROM %s ORDER BY created_at DESC", table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", table, err)
	}

	defer func() { _ = rows.Close() }()

	records := make([]*T, 0)

	for rows.Next() {
		var doc []byte

		err = rows.Scan(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", table, err)
		}

		var record T

		err = json.Unmarshal(doc, &record)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s record: %w", table, err)
		}

		records = append(records, &record)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", table, err)
	}

	return records, nil
}

// TaskRepository stores task records.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	return docSave(ctx, r.db, "tasks", task.ID, task)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return docGet[models.Task](ctx, r.db, "tasks", id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return docDelete(ctx, r.db, "tasks", id)
}

func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	return docList[models.Task](ctx, r.db, "tasks")
}

// MeetingRepository stores meeting records.
type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Save(ctx context.Context, meeting *models.Meeting) error {
	return docSave(ctx, r.db, "meetings", meeting.ID, meeting)
}

func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	return docGet[models.Meeting](ctx, r.db, "meetings", id)
}

func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	return docDelete(ctx, r.db, "meetings", id)
}

func (r *MeetingRepository) List(ctx context.Context) ([]*models.Meeting, error) {
	return docList[models.Meeting](ctx, r.db, "meetings")
}

// ApplicationRepository stores aid application records.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Save(ctx context.Context, application *models.AidApplication) error {
	return docSave(ctx, r.db, "aid_applications", application.ID, application)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.AidApplication, error) {
	return docGet[models.AidApplication](ctx, r.db, "aid_applications", id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	return docDelete(ctx, r.db, "aid_applications", id)
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*models.AidApplication, error) {
	return docList[models.AidApplication](ctx, r.db, "aid_applications")
}

// NotificationRepository stores in-app notifications. user_id and is_read are
// lifted into columns so the unread listing stays indexable.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Save(ctx context.Context, notification *models.Notification) error {
	doc, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	query := `
		INSERT INTO notifications (id, user_id, is_read, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			is_read = EXCLUDED.is_read,
			doc = EXCLUDED.doc
	`

	_, err = r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.IsRead,
		doc,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var doc []byte

	err := r.db.QueryRowContext(ctx, "SELECT doc FROM notifications WHERE id = $1", id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query notification: %w", err)
	}

	var notification models.Notification

	err = json.Unmarshal(doc, &notification)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	return &notification, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	query := "SELECT doc FROM notifications WHERE user_id = $1"
	if unreadOnly {
		query += " AND is_read = false"
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	defer func() { _ = rows.Close() }()

	notifications := make([]*models.Notification, 0)

	for rows.Next() {
		var doc []byte

		err = rows.Scan(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		var notification models.Notification

		err = json.Unmarshal(doc, &notification)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
		}

		notifications = append(notifications, &notification)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}
