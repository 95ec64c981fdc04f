// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

const opTimeout = 5 * time.Second

func (r *mongoSlotStore) Create(ctx context.Context, slot models.AvailabilitySlot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return "", fmt.Errorf("failed to insert slot: %w", err)
	}
	return slot.ID, nil
}

// Update rewrites the mutable slot flags, guarded by the optimistic version
// token: the write matches only when the stored version equals the caller's
// base version, and bumps it. A zero match count surfaces as
// ErrVersionConflict rather than a silent overwrite.
func (r *mongoSlotStore) Update(ctx context.Context, slot models.AvailabilitySlot) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"id":         slot.ID,
		"providerId": slot.ProviderID,
		"version":    slot.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"isAvailable": slot.IsAvailable,
			"isBooked":    slot.IsBooked,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update slot %s: %w", slot.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *mongoSlotStore) Delete(ctx context.Context, providerID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slotID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSlotStore) ListByDateRange(ctx context.Context, providerID, from, to string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots in [%s, %s]: %w", from, to, err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoSlotStore) ListByDates(ctx context.Context, providerID string, dates []string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$in": dates},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots by dates: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// MarkBooked flags the slot consumed by an accepted booking. Booked slots are
// immutable to the week editor from this point on.
func (r *mongoSlotStore) MarkBooked(ctx context.Context, providerID, date string, hour int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date, "hour": hour}
	update := bson.M{
		"$set": bson.M{"isBooked": true, "isAvailable": false},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark slot booked: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
