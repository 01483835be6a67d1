package admin

import (
	"context"
	"fmt"

	"chequered/models"
	"chequered/services/booking"

	"go.uber.org/zap"
)

// GetSchedule returns the override for date, or an open day with no clipping when none is stored.
func (s *DefaultAdminService) GetSchedule(ctx context.Context, date string) (*models.DaySchedule, error) {
	if !booking.ValidDate(date) {
		return nil, booking.ErrInvalidDate
	}
	schedule, err := s.Schedules.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", date, err)
	}
	if schedule == nil {
		return &models.DaySchedule{Date: date, IsOpen: true}, nil
	}
	return schedule, nil
}

func (s *DefaultAdminService) SaveSchedule(ctx context.Context, schedule models.DaySchedule) (*models.DaySchedule, error) {
	if err := validateSchedule(&schedule); err != nil {
		return nil, err
	}
	schedule.UpdatedAt = s.now().UTC()
	if err := s.Schedules.Save(ctx, &schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule for %s: %w", schedule.Date, err)
	}
	s.logger().Info("day schedule saved",
		zap.String("date", schedule.Date),
		zap.Bool("open", schedule.IsOpen),
		zap.String("start", schedule.StartTime),
		zap.String("end", schedule.EndTime))
	return &schedule, nil
}

func (s *DefaultAdminService) ListSchedules(ctx context.Context, from, to string) ([]models.DaySchedule, error) {
	if !booking.ValidDate(from) || !booking.ValidDate(to) || to < from {
		return nil, ErrInvalidRange
	}
	schedules, err := s.Schedules.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	if schedules == nil {
		schedules = []models.DaySchedule{}
	}
	return schedules, nil
}
