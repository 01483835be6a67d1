package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The unique referenceCode index is what makes code collisions detectable.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "referenceCode", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_reference"),
		},
		{
			Keys:    bson.D{{Key: "slotId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("slot_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetName("date_time_idx"),
		},
		{
			Keys:    bson.D{{Key: "experienceId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("experience_date_idx"),
		},
	}

	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
