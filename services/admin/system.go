package admin

import (
	"context"
	"fmt"

	"chequered/models"
	"chequered/utils"

	"go.uber.org/zap"
)

// ResetSystem wipes bookings, slot counters, day schedules and experiences.
func (s *DefaultAdminService) ResetSystem(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"bookings", s.Bookings.DeleteAll},
		{"slots", s.Slots.DeleteAll},
		{"schedules", s.Schedules.DeleteAll},
		{"experiences", s.Experiences.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			s.logger().Error("system reset failed", zap.String("collection", step.name), zap.Error(err))
			return fmt.Errorf("%w (%s): %v", ErrResetFailed, step.name, err)
		}
	}
	s.logger().Warn("system reset completed")
	return nil
}

// DefaultExperiences returns the stock exhibition programme, valid for one year from today.
func DefaultExperiences(today string, endDate string, timezone string) []models.Experience {
	return []models.Experience{
		{
			Name:            "Immersive Experience",
			Description:     "Step inside the paddock: a guided immersive room for small groups.",
			Timezone:        timezone,
			MaxCapacity:     4,
			DurationMinutes: 30,
			OffsetMinutes:   15,
			Color:           "#dc2626",
			IsActive:        true,
			StartDate:       today,
			EndDate:         endDate,
			TimeIntervals:   []models.TimeInterval{{StartTime: "09:00", EndTime: "15:30"}},
		},
		{
			Name:            "VR Experience",
			Description:     "Take a virtual lap behind the wheel in our VR simulators.",
			Timezone:        timezone,
			MaxCapacity:     12,
			DurationMinutes: 20,
			OffsetMinutes:   10,
			Color:           "#2563eb",
			IsActive:        true,
			StartDate:       today,
			EndDate:         endDate,
			TimeIntervals:   []models.TimeInterval{{StartTime: "09:30", EndTime: "15:30"}},
		},
	}
}

// LoadDefaults saves the default experiences as new records.
func (s *DefaultAdminService) LoadDefaults(ctx context.Context) ([]models.Experience, error) {
	loc := s.location()
	today := s.now().In(loc)
	defaults := DefaultExperiences(
		today.Format(utils.DateLayout),
		today.AddDate(1, 0, 0).Format(utils.DateLayout),
		loc.String(),
	)

	saved := make([]models.Experience, 0, len(defaults))
	for _, exp := range defaults {
		out, err := s.SaveExperience(ctx, exp)
		if err != nil {
			return saved, err
		}
		saved = append(saved, *out)
	}
	s.logger().Info("default experiences loaded", zap.Int("count", len(saved)))
	return saved, nil
}
