// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chequered/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) GetStates(ctx context.Context, experienceID, date string) (map[string]models.SlotState, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"experienceId": experienceID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to load slot states: %w", err)
	}
	defer cursor.Close(ctx)

	var states []models.SlotState
	if err := cursor.All(ctx, &states); err != nil {
		return nil, err
	}
	byID := make(map[string]models.SlotState, len(states))
	for _, st := range states {
		byID[st.ID] = st
	}
	return byID, nil
}

func (r *mongoSlotRepo) GetState(ctx context.Context, slotID string) (*models.SlotState, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var st models.SlotState
	err := r.coll.FindOne(ctx, bson.M{"_id": slotID}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Reserve relies on the upsert: when the guarded filter does not match an
// existing document, the insert collides on _id and is reported as unavailable.
func (r *mongoSlotRepo) Reserve(ctx context.Context, slot models.Slot, pax int) error {
	if pax <= 0 || pax > slot.MaxCapacity {
		return ErrSlotUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":     slot.ID,
		"blocked": bson.M{"$ne": true},
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{
					bson.M{"$ifNull": bson.A{"$booked", 0}},
					bson.M{"$ifNull": bson.A{"$held", 0}},
					pax,
				}},
				slot.MaxCapacity,
			},
		},
	}
	update := bson.M{
		"$inc": bson.M{"held": pax},
		"$set": bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{
			"experienceId": slot.ExperienceID,
			"date":         slot.Date,
			"time":         slot.Time,
			"booked":       0,
			"blocked":      false,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotUnavailable
	}
	if err != nil {
		return fmt.Errorf("failed to reserve slot %s: %w", slot.ID, err)
	}
	return nil
}

func (r *mongoSlotRepo) ReleaseHold(ctx context.Context, slotID string, pax int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": slotID, "held": bson.M{"$gte": pax}}
	update := bson.M{
		"$inc": bson.M{"held": -pax},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release hold on slot %s: %w", slotID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("slot %s holds fewer than %d places", slotID, pax)
	}
	return nil
}

func (r *mongoSlotRepo) SetBlocked(ctx context.Context, slot models.Slot, blocked bool, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if !blocked {
		reason = ""
	}
	update := bson.M{
		"$set": bson.M{
			"blocked":     blocked,
			"blockReason": reason,
			"updatedAt":   time.Now(),
		},
		"$setOnInsert": bson.M{
			"experienceId": slot.ExperienceID,
			"date":         slot.Date,
			"time":         slot.Time,
			"booked":       0,
			"held":         0,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": slot.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update blocked flag for slot %s: %w", slot.ID, err)
	}
	return nil
}

func (r *mongoSlotRepo) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
