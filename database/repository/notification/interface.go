// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

// NotificationStore persists in-app notification records. Records are never
// deleted; list views filter on the client side.
type NotificationStore interface {
	Insert(ctx context.Context, n models.Notification) error
	// ListByRecipient returns the recipient's notifications newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	// MarkActioned flips isActioned at most once; the second caller observes
	// actioned=false.
	MarkActioned(ctx context.Context, id string) (bool, error)
	EnsureIndexes() error
}

type mongoNotificationStore struct {
	coll *mongo.Collection
}

// NewMongoNotificationStore constructs a NotificationStore backed by the
// notifications collection of the given database.
func NewMongoNotificationStore(db *mongo.Database) NotificationStore {
	return &mongoNotificationStore{coll: db.Collection("notifications")}
}
