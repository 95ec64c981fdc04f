// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

// BookingStore persists booking requests. Bookings are created pending,
// finalized at most once, and never deleted here.
type BookingStore interface {
	Create(ctx context.Context, b models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FinalizeIfPending conditionally moves a booking to a terminal state.
	// It matches only while the stored status is still pending, so of two
	// racing resolutions exactly one observes matched=true.
	FinalizeIfPending(ctx context.Context, id string, status models.BookingStatus, response string, at time.Time) (bool, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingStore struct {
	coll *mongo.Collection
}

// NewMongoBookingStore constructs a BookingStore backed by the bookings
// collection of the given database.
func NewMongoBookingStore(db *mongo.Database) BookingStore {
	return &mongoBookingStore{coll: db.Collection("bookings")}
}
