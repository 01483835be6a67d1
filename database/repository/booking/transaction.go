package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "chequered/database/repository/slot"
	"chequered/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoBookingRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (repo *MongoBookingRepo) ConfirmHeld(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return err
		}

		filter := bson.M{
			"_id":  booking.SlotID,
			"held": bson.M{"$gte": booking.Pax},
		}
		update := bson.M{
			"$inc": bson.M{"held": -booking.Pax, "booked": booking.Pax},
			"$set": bson.M{"updatedAt": time.Now()},
		}
		res, err := repo.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("move held places to booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return slotRepo.ErrSlotUnavailable
		}
		return nil
	})
	if err != nil {
		// Duplicate keys are returned unwrapped so callers can retry with a new reference code.
		if mongo.IsDuplicateKeyError(err) || errors.Is(err, slotRepo.ErrSlotUnavailable) {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) Cancel(ctx context.Context, id string, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var cancelled models.Booking
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "status": models.BookingConfirmed, "checkedIn": false}
		update := bson.M{"$set": bson.M{"status": models.BookingCancelled, "cancelledAt": at}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err := repo.bookingColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&cancelled)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingConflict
		}
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}

		return repo.releaseBooked(sc, cancelled.SlotID, cancelled.Pax)
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

func (repo *MongoBookingRepo) CheckIn(ctx context.Context, id string, arrived []int, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var checkedIn models.Booking
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current models.Booking
		filter := bson.M{"id": id, "status": models.BookingConfirmed, "checkedIn": false}
		err := repo.bookingColl.FindOne(sc, filter).Decode(&current)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingConflict
		}
		if err != nil {
			return fmt.Errorf("load booking for check-in failed: %w", err)
		}
		if len(arrived) == 0 || len(arrived) > current.Pax {
			return ErrBookingConflict
		}

		update := bson.M{"$set": bson.M{
			"status":           models.BookingCheckedIn,
			"checkedIn":        true,
			"originalPax":      current.Pax,
			"pax":              len(arrived),
			"arrivedAttendees": arrived,
			"checkedInAt":      at,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := repo.bookingColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&checkedIn); err != nil {
			return fmt.Errorf("check-in update failed: %w", err)
		}

		if released := current.Pax - len(arrived); released > 0 {
			return repo.releaseBooked(sc, current.SlotID, released)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &checkedIn, nil
}

func (repo *MongoBookingRepo) releaseBooked(sc mongo.SessionContext, slotID string, pax int) error {
	filter := bson.M{"_id": slotID, "booked": bson.M{"$gte": pax}}
	update := bson.M{
		"$inc": bson.M{"booked": -pax},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := repo.slotColl.UpdateOne(sc, filter, update)
	if err != nil {
		return fmt.Errorf("release booked places failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("slot %s has fewer than %d booked places", slotID, pax)
	}
	return nil
}
