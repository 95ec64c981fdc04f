// File: database/repository/profile/crud.go
package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// GetAvailability reads the provider's current availability tokens. A missing
// profile document reads as an empty set; SetAvailability upserts, so the
// first resync for a new provider creates the field.
func (r *mongoProfileStore) GetAvailability(ctx context.Context, providerID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc struct {
		Availability []string `bson:"availability"`
	}
	opts := options.FindOne().SetProjection(bson.M{"availability": 1})
	err := r.coll.FindOne(ctx, bson.M{"id": providerID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read availability for %s: %w", providerID, err)
	}
	return doc.Availability, nil
}

func (r *mongoProfileStore) SetAvailability(ctx context.Context, providerID string, tokens []string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if tokens == nil {
		tokens = []string{}
	}
	update := bson.M{"$set": bson.M{"availability": tokens}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update, opts); err != nil {
		return fmt.Errorf("failed to write availability for %s: %w", providerID, err)
	}
	return nil
}
