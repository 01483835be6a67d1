package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chequered/models"
	"chequered/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) loadExperience(ctx context.Context, experienceID string) (*models.Experience, error) {
	exp, err := s.Experiences.GetByID(ctx, experienceID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load experience %s: %w", experienceID, err)
	}
	return exp, nil
}

func (s *DefaultBookingService) location(exp models.Experience) *time.Location {
	return ExperienceLocation(exp, s.DefaultLocation)
}

// slotsFor generates the slots of exp on date with live counters applied.
func (s *DefaultBookingService) slotsFor(ctx context.Context, exp models.Experience, date string) ([]models.Slot, error) {
	schedule, err := s.Schedules.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	states, err := s.Slots.GetStates(ctx, exp.ID, date)
	if err != nil {
		return nil, err
	}
	return GenerateSlotsForDate(exp, date, schedule, states, s.now(), s.location(exp)), nil
}

// upcomingSlots returns the slots of today and the following lookahead days.
func (s *DefaultBookingService) upcomingSlots(ctx context.Context, exp models.Experience) ([]models.Slot, error) {
	today := s.now().In(s.location(exp))
	var all []models.Slot
	for i := 0; i < s.lookaheadDays(); i++ {
		date := today.AddDate(0, 0, i).Format(utils.DateLayout)
		slots, err := s.slotsFor(ctx, exp, date)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}
	return all, nil
}

func (s *DefaultBookingService) ListExperiences(ctx context.Context, pax int) ([]models.ExperienceAvailability, error) {
	if pax <= 0 {
		return nil, ErrInvalidPax
	}
	exps, err := s.Experiences.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.ExperienceAvailability{}
	for _, exp := range exps {
		if !exp.IsActive {
			continue
		}
		item := models.ExperienceAvailability{Experience: exp, Label: models.LabelSoldOut}
		if pax > exp.MaxCapacity {
			item.Label = fmt.Sprintf("MAX %d PAX", exp.MaxCapacity)
			out = append(out, item)
			continue
		}

		slots, err := s.upcomingSlots(ctx, exp)
		if err != nil {
			return nil, fmt.Errorf("failed to compute availability for %s: %w", exp.ID, err)
		}
		for i := range slots {
			if slots[i].Bookable() && slots[i].RemainingCapacity >= pax {
				next := slots[i]
				item.NextSlot = &next
				item.Available = true
				item.Label = models.LabelAvailable
				break
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *DefaultBookingService) GetSlots(ctx context.Context, experienceID, date string) ([]models.Slot, error) {
	if !ValidDate(date) {
		return nil, ErrInvalidDate
	}
	exp, err := s.loadExperience(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	slots, err := s.slotsFor(ctx, *exp, date)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	return slots, nil
}

func (s *DefaultBookingService) FindBookingOptions(ctx context.Context, experienceID string, pax int) ([]models.SlotOption, error) {
	if pax <= 0 {
		return nil, ErrInvalidPax
	}
	exp, err := s.loadExperience(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if !exp.IsActive {
		return []models.SlotOption{}, nil
	}
	slots, err := s.upcomingSlots(ctx, *exp)
	if err != nil {
		return nil, err
	}
	options := BuildBookingOptions(slots, pax)
	s.logger().Debug("booking options computed",
		zap.String("experienceId", experienceID), zap.Int("pax", pax), zap.Int("options", len(options)))
	return options, nil
}

// ResolveSlot finds the live slot addressed by slotID.
func (s *DefaultBookingService) ResolveSlot(ctx context.Context, slotID string) (*models.Experience, models.Slot, error) {
	experienceID, date, _, err := ParseSlotID(slotID)
	if err != nil {
		return nil, models.Slot{}, err
	}
	exp, err := s.loadExperience(ctx, experienceID)
	if err != nil {
		return nil, models.Slot{}, err
	}
	slots, err := s.slotsFor(ctx, *exp, date)
	if err != nil {
		return nil, models.Slot{}, err
	}
	for _, slot := range slots {
		if slot.ID == slotID {
			return exp, slot, nil
		}
	}
	return exp, models.Slot{}, ErrSlotNotFound
}

// SlotStart returns when a booking's slot begins, in the experience timezone.
func (s *DefaultBookingService) SlotStart(ctx context.Context, b models.Booking) (time.Time, error) {
	loc := s.DefaultLocation
	if exp, err := s.Experiences.GetByID(ctx, b.ExperienceID); err == nil {
		loc = s.location(*exp)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(utils.DateLayout+" "+utils.TimeLayout, b.Date+" "+b.Time, loc)
}
