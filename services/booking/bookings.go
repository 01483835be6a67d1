package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "chequered/database/repository/booking"
	slotRepo "chequered/database/repository/slot"
	"chequered/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// reserve checks the slot is open for pax and moves pax into its held counter.
func (s *DefaultBookingService) reserve(ctx context.Context, slotID string, pax int) (*models.Experience, models.Slot, error) {
	if pax <= 0 {
		return nil, models.Slot{}, ErrInvalidPax
	}
	exp, slot, err := s.ResolveSlot(ctx, slotID)
	if err != nil {
		return nil, models.Slot{}, err
	}
	switch slot.Status {
	case models.SlotPassed:
		return nil, models.Slot{}, ErrSlotPassed
	case models.SlotBlocked:
		return nil, models.Slot{}, ErrSlotBlocked
	}
	if pax > exp.MaxCapacity {
		return nil, models.Slot{}, ErrPartyTooLarge
	}
	if pax > slot.RemainingCapacity {
		return nil, models.Slot{}, ErrInsufficientCapacity
	}

	if err := s.Slots.Reserve(ctx, slot, pax); err != nil {
		if errors.Is(err, slotRepo.ErrSlotUnavailable) {
			return nil, models.Slot{}, ErrInsufficientCapacity
		}
		return nil, models.Slot{}, err
	}
	return exp, slot, nil
}

func (s *DefaultBookingService) releaseHeld(ctx context.Context, slotID string, pax int) {
	if err := s.Slots.ReleaseHold(ctx, slotID, pax); err != nil {
		s.logger().Error("failed to release held places",
			zap.String("slotId", slotID), zap.Int("pax", pax), zap.Error(err))
	}
}

// releaseClaimed gives a claimed hold's places back to its slot. When that
// fails the hold is stored again so the expiry task can retry the release.
func (s *DefaultBookingService) releaseClaimed(ctx context.Context, hold models.Hold) error {
	err := s.Slots.ReleaseHold(ctx, hold.SlotID, hold.Pax)
	if err == nil {
		return nil
	}
	if serr := s.Holds.Save(ctx, hold, holdGrace); serr != nil {
		s.logger().Error("failed to restore hold after release error",
			zap.String("holdId", hold.ID), zap.String("slotId", hold.SlotID),
			zap.Int("pax", hold.Pax), zap.Error(serr))
	}
	return err
}

func (s *DefaultBookingService) HoldSlot(ctx context.Context, slotID string, pax int) (*models.Hold, error) {
	exp, slot, err := s.reserve(ctx, slotID, pax)
	if err != nil {
		return nil, err
	}

	now := s.now()
	hold := models.Hold{
		ID:           uuid.New().String(),
		SlotID:       slot.ID,
		ExperienceID: exp.ID,
		Date:         slot.Date,
		Time:         slot.Time,
		Pax:          pax,
		ExpiresAt:    now.Add(s.holdTTL()),
		CreatedAt:    now,
	}

	// The key outlives the hold so the expiry task can still claim it.
	if err := s.Holds.Save(ctx, hold, s.holdTTL()+holdGrace); err != nil {
		s.releaseHeld(ctx, slot.ID, pax)
		return nil, err
	}
	if err := s.Expiry.ScheduleHoldExpiry(ctx, hold); err != nil {
		if claimed, _ := s.Holds.Claim(ctx, hold.ID); claimed != nil {
			s.releaseHeld(ctx, slot.ID, pax)
		}
		return nil, fmt.Errorf("failed to schedule hold expiry: %w", err)
	}

	s.logger().Info("slot held",
		zap.String("holdId", hold.ID), zap.String("slotId", slot.ID), zap.Int("pax", pax))
	return &hold, nil
}

func (s *DefaultBookingService) ReleaseHold(ctx context.Context, holdID string) error {
	hold, err := s.Holds.Claim(ctx, holdID)
	if err != nil {
		return err
	}
	if hold == nil {
		return ErrHoldNotFound
	}
	return s.releaseClaimed(ctx, *hold)
}

// ExpireHold releases a lapsed hold. A hold already confirmed or released is a no-op.
func (s *DefaultBookingService) ExpireHold(ctx context.Context, holdID string) error {
	hold, err := s.Holds.Claim(ctx, holdID)
	if err != nil {
		return err
	}
	if hold == nil {
		return nil
	}
	if err := s.releaseClaimed(ctx, *hold); err != nil {
		return err
	}
	s.logger().Info("hold expired",
		zap.String("holdId", hold.ID), zap.String("slotId", hold.SlotID), zap.Int("pax", hold.Pax))
	return nil
}

func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, holdID string, details models.VisitorDetails) (*models.Booking, error) {
	pending, err := s.Holds.Get(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrHoldExpired
	}
	visitor, err := normalizeVisitor(details, pending.Pax)
	if err != nil {
		return nil, err
	}

	hold, err := s.Holds.Claim(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldExpired
	}
	if s.now().After(hold.ExpiresAt) {
		if err := s.releaseClaimed(ctx, *hold); err != nil {
			s.logger().Error("failed to release expired hold", zap.String("holdId", hold.ID), zap.Error(err))
		}
		return nil, ErrHoldExpired
	}

	name := ""
	if exp, err := s.Experiences.GetByID(ctx, hold.ExperienceID); err == nil {
		name = exp.Name
	}

	booking := s.newBooking(hold.SlotID, hold.ExperienceID, name, hold.Date, hold.Time, hold.Pax, visitor)
	if err := s.persist(ctx, booking); err != nil {
		if rerr := s.releaseClaimed(ctx, *hold); rerr != nil {
			s.logger().Error("failed to release hold after failed booking", zap.String("holdId", hold.ID), zap.Error(rerr))
		}
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, slotID string, pax int, details models.VisitorDetails) (*models.Booking, error) {
	if pax <= 0 {
		return nil, ErrInvalidPax
	}
	visitor, err := normalizeVisitor(details, pax)
	if err != nil {
		return nil, err
	}
	exp, slot, err := s.reserve(ctx, slotID, pax)
	if err != nil {
		return nil, err
	}

	booking := s.newBooking(slot.ID, exp.ID, exp.Name, slot.Date, slot.Time, pax, visitor)
	if err := s.persist(ctx, booking); err != nil {
		s.releaseHeld(ctx, slot.ID, pax)
		return nil, err
	}
	return booking, nil
}

// BookOption books every assignment of option, handing out attendee names in
// order. Bookings made before a failing assignment are cancelled again.
func (s *DefaultBookingService) BookOption(ctx context.Context, option models.SlotOption, details models.VisitorDetails) ([]models.Booking, error) {
	if len(option.Slots) == 0 {
		return nil, ErrEmptyOption
	}
	total := 0
	for _, a := range option.Slots {
		if a.PaxToAssign <= 0 {
			return nil, ErrInvalidPax
		}
		total += a.PaxToAssign
	}
	visitor, err := normalizeVisitor(details, total)
	if err != nil {
		return nil, err
	}

	var made []models.Booking
	offset := 0
	for _, a := range option.Slots {
		part := visitor
		part.AttendeeNames = visitor.AttendeeNames[offset : offset+a.PaxToAssign]
		offset += a.PaxToAssign

		b, err := s.CreateBooking(ctx, a.Slot.ID, a.PaxToAssign, part)
		if err != nil {
			s.rollback(ctx, made)
			return nil, err
		}
		made = append(made, *b)
	}
	return made, nil
}

func (s *DefaultBookingService) rollback(ctx context.Context, made []models.Booking) {
	for _, b := range made {
		if _, err := s.Bookings.Cancel(ctx, b.ID, s.now()); err != nil {
			s.logger().Error("failed to roll back split booking",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) newBooking(slotID, experienceID, experienceName, date, clock string, pax int, visitor models.VisitorDetails) *models.Booking {
	return &models.Booking{
		ID:             uuid.New().String(),
		SlotID:         slotID,
		ExperienceID:   experienceID,
		ExperienceName: experienceName,
		Date:           date,
		Time:           clock,
		Pax:            pax,
		OriginalPax:    pax,
		VisitorName:    visitor.VisitorName,
		VisitorEmail:   visitor.VisitorEmail,
		AttendeeNames:  visitor.AttendeeNames,
		Status:         models.BookingConfirmed,
		CreatedAt:      s.now(),
	}
}

// persist stores a booking whose places are already held, retrying on reference collisions.
func (s *DefaultBookingService) persist(ctx context.Context, booking *models.Booking) error {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		code, err := NewReferenceCode()
		if err != nil {
			return fmt.Errorf("failed to generate reference code: %w", err)
		}
		booking.ReferenceCode = code

		err = s.Bookings.ConfirmHeld(ctx, booking)
		switch {
		case err == nil:
			s.logger().Info("booking confirmed",
				zap.String("bookingId", booking.ID),
				zap.String("slotId", booking.SlotID),
				zap.String("reference", booking.ReferenceCode),
				zap.Int("pax", booking.Pax))
			return nil
		case mongo.IsDuplicateKeyError(err):
			s.logger().Warn("reference code collision, retrying", zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, slotRepo.ErrSlotUnavailable):
			return ErrHoldExpired
		default:
			return err
		}
	}
	return ErrReferenceExhausted
}

func (s *DefaultBookingService) LookupBooking(ctx context.Context, email, ref string) (*models.Booking, error) {
	email, ref = NormalizeEmail(email), NormalizeReference(ref)
	if email == "" || ref == "" {
		return nil, ErrBookingNotFound
	}
	b, err := s.Bookings.GetByReference(ctx, ref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if NormalizeEmail(b.VisitorEmail) != email {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, email, ref string) (*models.Booking, error) {
	b, err := s.LookupBooking(ctx, email, ref)
	if err != nil {
		return nil, err
	}
	switch {
	case b.Status == models.BookingCancelled:
		return nil, ErrAlreadyCancelled
	case b.CheckedIn || b.Status == models.BookingCheckedIn:
		return nil, ErrAlreadyCheckedIn
	}

	start, err := s.SlotStart(ctx, *b)
	if err != nil {
		return nil, err
	}
	if !s.now().Before(start) {
		return nil, ErrCancellationClosed
	}

	cancelled, err := s.Bookings.Cancel(ctx, b.ID, s.now())
	if errors.Is(err, bookingRepo.ErrBookingConflict) {
		return nil, ErrBookingChanged
	}
	if err != nil {
		return nil, err
	}
	s.logger().Info("booking cancelled",
		zap.String("bookingId", cancelled.ID), zap.String("reference", cancelled.ReferenceCode))
	return cancelled, nil
}
