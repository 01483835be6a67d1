package admin

import (
	"errors"
	"strings"
	"time"

	"chequered/models"
	"chequered/services/booking"
)

// validateExperience normalises exp in place and rejects definitions that cannot generate slots.
func validateExperience(exp *models.Experience) error {
	exp.Name = strings.TrimSpace(exp.Name)
	exp.Timezone = strings.TrimSpace(exp.Timezone)

	if exp.Name == "" {
		return invalidExperience("name is required")
	}
	if exp.MaxCapacity < 1 {
		return invalidExperience("maxCapacity must be at least 1")
	}
	if exp.DurationMinutes < 1 {
		return invalidExperience("durationMinutes must be at least 1")
	}
	if exp.OffsetMinutes < 0 {
		return invalidExperience("offsetMinutes cannot be negative")
	}
	if exp.StartDate != "" && !booking.ValidDate(exp.StartDate) {
		return invalidExperience("startDate must be formatted YYYY-MM-DD")
	}
	if exp.EndDate != "" && !booking.ValidDate(exp.EndDate) {
		return invalidExperience("endDate must be formatted YYYY-MM-DD")
	}
	if exp.StartDate != "" && exp.EndDate != "" && exp.EndDate < exp.StartDate {
		return invalidExperience("endDate is before startDate")
	}
	if exp.Timezone != "" {
		if _, err := time.LoadLocation(exp.Timezone); err != nil {
			return invalidExperience("unknown timezone " + exp.Timezone)
		}
	}
	for _, interval := range exp.TimeIntervals {
		if err := validateWindow(interval.StartTime, interval.EndTime); err != nil {
			return invalidExperience("time interval " + interval.StartTime + "-" + interval.EndTime + ": " + err.Error())
		}
	}
	return nil
}

var (
	errWindowStart = errors.New("start must be HH:mm")
	errWindowEnd   = errors.New("end must be HH:mm")
	errWindowOrder = errors.New("start must be before end")
)

func validateWindow(start, end string) error {
	startMin, err := booking.ParseClock(start)
	if err != nil {
		return errWindowStart
	}
	endMin, err := booking.ParseClock(end)
	if err != nil {
		return errWindowEnd
	}
	if startMin >= endMin {
		return errWindowOrder
	}
	return nil
}

func validateSchedule(schedule *models.DaySchedule) error {
	if !booking.ValidDate(schedule.Date) {
		return invalidSchedule("date must be formatted YYYY-MM-DD")
	}
	if !schedule.IsOpen {
		return nil
	}
	if schedule.StartTime == "" && schedule.EndTime == "" {
		return nil
	}
	// an open day with only one bound clips on that side alone
	start, end := schedule.StartTime, schedule.EndTime
	if start == "" {
		start = "00:00"
	}
	if end == "" {
		end = "23:59"
	}
	if err := validateWindow(start, end); err != nil {
		return invalidSchedule(err.Error())
	}
	return nil
}
