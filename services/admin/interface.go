package admin

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

type AdminService interface {
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	SaveExperience(ctx context.Context, exp models.Experience) (*models.Experience, error)
	DeleteExperience(ctx context.Context, id string) error
	SetExperienceActive(ctx context.Context, id string, active bool) (*models.Experience, error)

	GetSchedule(ctx context.Context, date string) (*models.DaySchedule, error)
	SaveSchedule(ctx context.Context, schedule models.DaySchedule) (*models.DaySchedule, error)
	ListSchedules(ctx context.Context, from, to string) ([]models.DaySchedule, error)

	ListSlots(ctx context.Context, experienceID, date string) ([]models.AdminSlot, error)
	ToggleSlotBlock(ctx context.Context, slotID string, blocked bool, reason string) (*models.Slot, error)

	ResetSystem(ctx context.Context) error
	LoadDefaults(ctx context.Context) ([]models.Experience, error)
}

// SlotSource generates live slots. The booking service satisfies it.
type SlotSource interface {
	GetSlots(ctx context.Context, experienceID, date string) ([]models.Slot, error)
	ResolveSlot(ctx context.Context, slotID string) (*models.Experience, models.Slot, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Experiences experienceRepo.ExperienceRepository
	Schedules   scheduleRepo.ScheduleRepository
	Slots       slotRepo.SlotRepository
	Bookings    bookingRepo.BookingRepository
	SlotSource  SlotSource
	Logger      *zap.Logger

	DefaultLocation *time.Location
	Now             func() time.Time
}

func (s *DefaultAdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAdminService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultAdminService) location() *time.Location {
	if s.DefaultLocation != nil {
		return s.DefaultLocation
	}
	return time.UTC
}
