// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

// ErrVersionConflict is returned when an update's base version no longer
// matches the stored record (either the slot is gone or another session wrote
// it first).
var ErrVersionConflict = errors.New("slot missing or stale version")

// SlotStore is the abstract persistence of individual availability slot
// records. Every other scheduling component depends on it; the summary on the
// provider profile is only a projection of what lives here.
type SlotStore interface {
	Create(ctx context.Context, slot models.AvailabilitySlot) (string, error)
	Update(ctx context.Context, slot models.AvailabilitySlot) error
	Delete(ctx context.Context, providerID, slotID string) error
	ListByDateRange(ctx context.Context, providerID, from, to string) ([]models.AvailabilitySlot, error)
	ListByDates(ctx context.Context, providerID string, dates []string) ([]models.AvailabilitySlot, error)
	MarkBooked(ctx context.Context, providerID, date string, hour int) error
	EnsureIndexes() error
}

type mongoSlotStore struct {
	coll *mongo.Collection
}

// NewMongoSlotStore constructs a SlotStore backed by the availability_slots
// collection of the given database.
func NewMongoSlotStore(db *mongo.Database) SlotStore {
	return &mongoSlotStore{coll: db.Collection("availability_slots")}
}
