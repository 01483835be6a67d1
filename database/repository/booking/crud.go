package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"chequered/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var activeStatuses = bson.A{models.BookingConfirmed, models.BookingCheckedIn}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

func (repo *MongoBookingRepo) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"referenceCode": ref})
}

func (repo *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ListActiveBySlot(ctx context.Context, slotID string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"slotId": slotID, "status": bson.M{"$in": activeStatuses}})
}

func (repo *MongoBookingRepo) ListActiveByExperienceDate(ctx context.Context, experienceID, date string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{
		"experienceId": experienceID,
		"date":         date,
		"status":       bson.M{"$in": activeStatuses},
	})
}

func (repo *MongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"date": date})
}

func (repo *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := repo.bookingColl.DeleteMany(ctx, bson.M{})
	return err
}
