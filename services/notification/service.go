package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"slotwise/models"
)

var validTypes = map[string]bool{
	models.NotificationBookingRequest:  true,
	models.NotificationBookingAccepted: true,
	models.NotificationBookingDeclined: true,
}

// Create fills in the record id and timestamp and persists the notification.
func (s *DefaultNotificationService) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.RecipientID == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}
	if !validTypes[n.Type] {
		return nil, fmt.Errorf("unknown notification type %q", n.Type)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	if err := s.Store.Insert(ctx, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListForRecipient returns the recipient's notifications, newest first. Views
// filter by type or actioned state client-side.
func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return s.Store.ListByRecipient(ctx, recipientID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Store.MarkRead(ctx, id)
}

// MarkAllRead flips every unread record for the recipient; called when they
// open their notification list.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.Store.MarkAllRead(ctx, recipientID)
}

// MarkActioned flips isActioned at most once. The false return tells the
// caller another surface already claimed the underlying request.
func (s *DefaultNotificationService) MarkActioned(ctx context.Context, id string) (bool, error) {
	return s.Store.MarkActioned(ctx, id)
}
