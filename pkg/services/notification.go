package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// NotificationService serves the in-app notification inbox.
type NotificationService struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewNotificationService(store persistence.Persistence, logger *slog.Logger) *NotificationService {
	return &NotificationService{persistence: store, logger: logger}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	notifications, err := s.persistence.Notifications().ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	notification, err := s.persistence.Notifications().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch notification %s: %w", id, err)
	}

	if notification == nil {
		return persistence.NewStoreError("MarkRead", "notification", id, persistence.ErrNotificationNotFound)
	}

	if notification.IsRead {
		return nil
	}

	notification.IsRead = true

	err = s.persistence.Notifications().Save(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}

	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := s.persistence.Notifications().ListByUser(ctx, userID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list unread notifications for user %s: %w", userID, err)
	}

	marked := 0

	for _, notification := range unread {
		notification.IsRead = true

		err = s.persistence.Notifications().Save(ctx, notification)
		if err != nil {
			return marked, fmt.Errorf("failed to mark notification %s read: %w", notification.ID, err)
		}

		marked++
	}

	return marked, nil
}
