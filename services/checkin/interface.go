package checkin

import (
	"context"
	"time"

	bookingRepo "chequered/database/repository/booking"
	experienceRepo "chequered/database/repository/experience"
	"chequered/models"

	"go.uber.org/zap"
)

// CheckInService backs the staff gate console.
type CheckInService interface {
	ResolveTicket(ctx context.Context, raw string) (*models.Booking, error)
	ValidateTicket(ctx context.Context, bookingID string) (*models.Booking, error)
	ProcessCheckIn(ctx context.Context, bookingID string, arrived []int) (*models.CheckInResult, error)
	Manifest(ctx context.Context, date string) ([]models.Booking, error)
}

type DefaultCheckInService struct {
	Bookings        bookingRepo.BookingRepository
	Experiences     experienceRepo.ExperienceRepository
	Logger          *zap.Logger
	DefaultLocation *time.Location
	// OpenBefore is how long before the slot start check-in opens.
	OpenBefore      time.Duration
	Now             func() time.Time
}

// DefaultOpenBefore applies when OpenBefore is not set.
const DefaultOpenBefore = 15 * time.Minute

func (s *DefaultCheckInService) openBefore() time.Duration {
	if s.OpenBefore > 0 {
		return s.OpenBefore
	}
	return DefaultOpenBefore
}

func (s *DefaultCheckInService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCheckInService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
