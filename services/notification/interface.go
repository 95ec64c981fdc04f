package notification

import (
	"context"
	"time"

	notificationRepo "slotwise/database/repository/notification"
	"slotwise/models"
)

// Service is the notification center: it creates, lists, and marks in-app
// notification records. It never deletes them and never sends anything
// external; rendering and delivery belong to other subsystems.
type Service interface {
	Create(ctx context.Context, n models.Notification) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	MarkActioned(ctx context.Context, id string) (bool, error)
}

// DefaultNotificationService is the production Service.
type DefaultNotificationService struct {
	Store notificationRepo.NotificationStore
	Now   func() time.Time
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
