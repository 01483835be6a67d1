package checkin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingRepo "chequered/database/repository/booking"
	"chequered/models"
	"chequered/services/booking"
	"chequered/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultCheckInService) ResolveTicket(ctx context.Context, raw string) (*models.Booking, error) {
	id, ref, err := ParseTicketCode(raw)
	if err != nil {
		return nil, err
	}

	var b *models.Booking
	if id != "" {
		b, err = s.Bookings.GetByID(ctx, id)
	} else {
		b, err = s.Bookings.GetByReference(ctx, ref)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, s.validate(ctx, *b)
}

func (s *DefaultCheckInService) ValidateTicket(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, *b); err != nil {
		return nil, err
	}
	return b, nil
}

// validate accepts only confirmed tickets for today in the experience timezone,
// from OpenBefore ahead of the slot start until the slot ends.
func (s *DefaultCheckInService) validate(ctx context.Context, b models.Booking) error {
	switch {
	case b.Status == models.BookingCancelled:
		return ErrTicketCancelled
	case b.CheckedIn || b.Status == models.BookingCheckedIn:
		return ErrAlreadyCheckedIn
	}

	loc := s.DefaultLocation
	duration := 0
	if exp, err := s.Experiences.GetByID(ctx, b.ExperienceID); err == nil {
		loc = booking.ExperienceLocation(*exp, s.DefaultLocation)
		duration = exp.DurationMinutes
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if loc == nil {
		loc = s.now().Location()
	}
	now := s.now().In(loc)
	if b.Date != now.Format(utils.DateLayout) {
		return ErrWrongDay
	}

	start, err := time.ParseInLocation(utils.DateLayout+" "+utils.TimeLayout, b.Date+" "+b.Time, loc)
	if err != nil {
		return fmt.Errorf("invalid ticket time %q: %w", b.Time, err)
	}
	opens := start.Add(-s.openBefore())
	if now.Before(opens) {
		return ErrTooEarly.WithMessage("too early, check-in opens at " + opens.Format(utils.TimeLayout))
	}
	// without a known duration the ticket stays valid for the rest of its day
	if duration > 0 && !now.Before(start.Add(time.Duration(duration)*time.Minute)) {
		return ErrTicketExpired
	}
	return nil
}

// checkArrivals returns the arrived indices sorted, rejecting duplicates and out-of-range entries.
func checkArrivals(arrived []int, attendees int) ([]int, error) {
	if len(arrived) == 0 {
		return nil, ErrNoArrivals
	}
	seen := make(map[int]struct{}, len(arrived))
	out := make([]int, 0, len(arrived))
	for _, idx := range arrived {
		if idx < 0 || idx >= attendees {
			return nil, ErrInvalidArrivals
		}
		if _, dup := seen[idx]; dup {
			return nil, ErrInvalidArrivals
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}

func (s *DefaultCheckInService) ProcessCheckIn(ctx context.Context, bookingID string, arrived []int) (*models.CheckInResult, error) {
	b, err := s.ValidateTicket(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	attendees := len(b.AttendeeNames)
	if attendees == 0 {
		attendees = b.Pax
	}
	arrived, err = checkArrivals(arrived, min(attendees, b.Pax))
	if err != nil {
		return nil, err
	}

	updated, err := s.Bookings.CheckIn(ctx, b.ID, arrived, s.now())
	if errors.Is(err, bookingRepo.ErrBookingConflict) {
		return nil, ErrTicketChanged
	}
	if err != nil {
		return nil, err
	}

	result := &models.CheckInResult{
		Booking:   *updated,
		CheckedIn: len(arrived),
		Released:  b.Pax - len(arrived),
	}
	if result.Released > 0 {
		result.Message = fmt.Sprintf("Checked in %d. %d released.", result.CheckedIn, result.Released)
	} else {
		result.Message = fmt.Sprintf("Success. %d checked in.", result.CheckedIn)
	}

	s.logger().Info("ticket checked in",
		zap.String("bookingId", b.ID),
		zap.String("reference", b.ReferenceCode),
		zap.Int("arrived", result.CheckedIn),
		zap.Int("released", result.Released))
	return result, nil
}

func (s *DefaultCheckInService) Manifest(ctx context.Context, date string) ([]models.Booking, error) {
	if date == "" {
		date = s.now().In(s.defaultLocation()).Format(utils.DateLayout)
	}
	if !booking.ValidDate(date) {
		return nil, booking.ErrInvalidDate
	}
	return s.Bookings.ListByDate(ctx, date)
}

func (s *DefaultCheckInService) defaultLocation() *time.Location {
	if s.DefaultLocation != nil {
		return s.DefaultLocation
	}
	return time.UTC
}
