package booking

import (
	"context"
	"time"

	bookingRepo "chequered/database/repository/booking"
	experienceRepo "chequered/database/repository/experience"
	scheduleRepo "chequered/database/repository/schedule"
	slotRepo "chequered/database/repository/slot"
	"chequered/models"

	"go.uber.org/zap"
)

// BookingService is the visitor-facing booking engine.
type BookingService interface {
	ListExperiences(ctx context.Context, pax int) ([]models.ExperienceAvailability, error)
	GetSlots(ctx context.Context, experienceID, date string) ([]models.Slot, error)
	FindBookingOptions(ctx context.Context, experienceID string, pax int) ([]models.SlotOption, error)
	HoldSlot(ctx context.Context, slotID string, pax int) (*models.Hold, error)
	ReleaseHold(ctx context.Context, holdID string) error
	ExpireHold(ctx context.Context, holdID string) error
	ConfirmBooking(ctx context.Context, holdID string, details models.VisitorDetails) (*models.Booking, error)
	CreateBooking(ctx context.Context, slotID string, pax int, details models.VisitorDetails) (*models.Booking, error)
	BookOption(ctx context.Context, option models.SlotOption, details models.VisitorDetails) ([]models.Booking, error)
	LookupBooking(ctx context.Context, email, ref string) (*models.Booking, error)
	CancelBooking(ctx context.Context, email, ref string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Experiences experienceRepo.ExperienceRepository
	Schedules   scheduleRepo.ScheduleRepository
	Slots       slotRepo.SlotRepository
	Bookings    bookingRepo.BookingRepository
	Holds       HoldStore
	Expiry      HoldExpiryScheduler
	Logger      *zap.Logger

	HoldTTL         time.Duration
	LookaheadDays   int
	DefaultLocation *time.Location
	Now             func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultBookingService) holdTTL() time.Duration {
	if s.HoldTTL <= 0 {
		return 10 * time.Minute
	}
	return s.HoldTTL
}

func (s *DefaultBookingService) lookaheadDays() int {
	if s.LookaheadDays <= 0 {
		return 2
	}
	return s.LookaheadDays
}
