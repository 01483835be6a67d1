package bookingRepo

import (
	"chequered/database"
	"chequered/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBookingConflict is returned when a booking is no longer in the state a transition requires.
var ErrBookingConflict = errors.New("booking state changed concurrently")

// BookingRepository persists bookings. Every method that changes a booking's
// party size also moves the matching slot counters in the same transaction.
type BookingRepository interface {
	// ConfirmHeld inserts the booking and moves booking.Pax from held to booked on its slot.
	ConfirmHeld(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByReference(ctx context.Context, ref string) (*models.Booking, error)
	// ListActiveBySlot returns confirmed and checked-in bookings for a slot.
	ListActiveBySlot(ctx context.Context, slotID string) ([]models.Booking, error)
	ListActiveByExperienceDate(ctx context.Context, experienceID, date string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	// Cancel marks a confirmed booking cancelled and returns its seats to the slot.
	Cancel(ctx context.Context, id string, at time.Time) (*models.Booking, error)
	// CheckIn marks a confirmed booking checked in with the arrived attendee
	// indices and releases the places of those who did not arrive.
	CheckIn(ctx context.Context, id string, arrived []int, at time.Time) (*models.Booking, error)
	DeleteAll(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.Database()
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		slotColl:    db.Collection("slots"),
	}
}
