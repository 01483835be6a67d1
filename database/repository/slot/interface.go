// File: database/repository/slot/interface.go
package slotRepo

import (
	"chequered/database"
	"chequered/models"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotUnavailable is returned when a reservation would exceed capacity or the slot is blocked.
var ErrSlotUnavailable = errors.New("slot is blocked or has insufficient capacity")

// SlotRepository owns the per-slot counters. A slot with no document has
// nothing booked, nothing held and is not blocked.
type SlotRepository interface {
	GetStates(ctx context.Context, experienceID, date string) (map[string]models.SlotState, error)
	// GetState returns nil without error when the slot has no document yet.
	GetState(ctx context.Context, slotID string) (*models.SlotState, error)
	// Reserve adds pax to the held counter iff booked+held+pax <= slot.MaxCapacity and the slot is not blocked.
	Reserve(ctx context.Context, slot models.Slot, pax int) error
	ReleaseHold(ctx context.Context, slotID string, pax int) error
	SetBlocked(ctx context.Context, slot models.Slot, blocked bool, reason string) error
	DeleteAll(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.Database().Collection("slots"),
	}
}
