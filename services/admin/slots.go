package admin

import (
	"context"
	"fmt"

	"chequered/models"

	"go.uber.org/zap"
)

// ListSlots returns the slots of an experience on date, each with its active bookings.
func (s *DefaultAdminService) ListSlots(ctx context.Context, experienceID, date string) ([]models.AdminSlot, error) {
	slots, err := s.SlotSource.GetSlots(ctx, experienceID, date)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListActiveByExperienceDate(ctx, experienceID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bySlot := make(map[string][]models.Booking, len(slots))
	for _, b := range bookings {
		bySlot[b.SlotID] = append(bySlot[b.SlotID], b)
	}

	out := make([]models.AdminSlot, 0, len(slots))
	for _, slot := range slots {
		slotBookings := bySlot[slot.ID]
		if slotBookings == nil {
			slotBookings = []models.Booking{}
		}
		out = append(out, models.AdminSlot{Slot: slot, Bookings: slotBookings})
	}
	return out, nil
}

// ToggleSlotBlock closes or reopens a slot. Existing bookings are kept either way.
func (s *DefaultAdminService) ToggleSlotBlock(ctx context.Context, slotID string, blocked bool, reason string) (*models.Slot, error) {
	_, slot, err := s.SlotSource.ResolveSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !blocked {
		reason = ""
	}
	if err := s.Slots.SetBlocked(ctx, slot, blocked, reason); err != nil {
		return nil, fmt.Errorf("failed to update slot %s: %w", slotID, err)
	}

	// re-read so counters and status reflect the new flag
	_, updated, err := s.SlotSource.ResolveSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	s.logger().Info("slot block toggled",
		zap.String("slotId", slotID), zap.Bool("blocked", blocked), zap.String("reason", reason))
	return &updated, nil
}
