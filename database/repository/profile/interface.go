// File: database/repository/profile/interface.go
package profileRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileStore exposes the single mutable field this service touches on a
// provider profile: the denormalized availability token list. Everything else
// on the profile belongs to other subsystems.
type ProfileStore interface {
	GetAvailability(ctx context.Context, providerID string) ([]string, error)
	SetAvailability(ctx context.Context, providerID string, tokens []string) error
}

type mongoProfileStore struct {
	coll *mongo.Collection
}

// NewMongoProfileStore constructs a ProfileStore backed by the providers
// collection of the given database.
func NewMongoProfileStore(db *mongo.Database) ProfileStore {
	return &mongoProfileStore{coll: db.Collection("providers")}
}
