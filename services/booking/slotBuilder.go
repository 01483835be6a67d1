package booking

import (
	"fmt"
	"sort"
	"time"

	"chequered/models"
	"chequered/utils"
)

const slotIDSuffixLayout = "20060102-1504"

// DefaultInterval is used when an experience has no configured windows.
var DefaultInterval = models.TimeInterval{StartTime: "09:00", EndTime: "18:00"}

// SlotID builds the stable identifier of the slot starting at start.
func SlotID(experienceID string, start time.Time) string {
	return experienceID + "-" + start.Format(slotIDSuffixLayout)
}

// ParseSlotID splits a slot id into experience id, date (YYYY-MM-DD) and time (HH:mm).
// Experience ids may themselves contain dashes, so the suffix is read from the end.
func ParseSlotID(slotID string) (experienceID, date, clock string, err error) {
	n := len(slotIDSuffixLayout)
	if len(slotID) < n+2 || slotID[len(slotID)-n-1] != '-' {
		return "", "", "", ErrInvalidSlotID
	}
	at, perr := time.Parse(slotIDSuffixLayout, slotID[len(slotID)-n:])
	if perr != nil {
		return "", "", "", ErrInvalidSlotID
	}
	return slotID[:len(slotID)-n-1], at.Format(utils.DateLayout), at.Format(utils.TimeLayout), nil
}

// ValidDate reports whether date is a YYYY-MM-DD calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse(utils.DateLayout, date)
	return err == nil
}

// ParseClock parses HH:mm into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(utils.TimeLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ExperienceLocation resolves the experience timezone, falling back to def.
func ExperienceLocation(exp models.Experience, def *time.Location) *time.Location {
	if exp.Timezone != "" {
		if loc, err := time.LoadLocation(exp.Timezone); err == nil {
			return loc
		}
	}
	if def == nil {
		return time.UTC
	}
	return def
}

// GenerateSlotsForDate derives the slots of exp on date. Each slot must fit
// entirely inside its window; the next slot starts duration+offset after the
// previous one. states carries booked/held/blocked counters keyed by slot id.
func GenerateSlotsForDate(
	exp models.Experience,
	date string,
	schedule *models.DaySchedule,
	states map[string]models.SlotState,
	now time.Time,
	loc *time.Location,
) []models.Slot {
	if !exp.IsActive {
		return nil
	}
	if exp.StartDate != "" && date < exp.StartDate {
		return nil
	}
	if exp.EndDate != "" && date > exp.EndDate {
		return nil
	}
	// guards the walk below against a zero step
	if exp.DurationMinutes <= 0 {
		return nil
	}
	if schedule != nil && !schedule.IsOpen {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(utils.DateLayout, date, loc)
	if err != nil {
		return nil
	}

	dayStart, dayEnd := 0, 24*60
	if schedule != nil {
		if m, err := ParseClock(schedule.StartTime); err == nil {
			dayStart = m
		}
		if m, err := ParseClock(schedule.EndTime); err == nil {
			dayEnd = m
		}
	}

	intervals := exp.TimeIntervals
	if len(intervals) == 0 {
		intervals = []models.TimeInterval{DefaultInterval}
	}

	step := exp.DurationMinutes + max(exp.OffsetMinutes, 0)

	// The walk runs on wall-clock minutes so DST changes never shift a slot off its window.
	var slots []models.Slot
	for _, interval := range intervals {
		startMin, err := ParseClock(interval.StartTime)
		if err != nil {
			continue
		}
		endMin, err := ParseClock(interval.EndTime)
		if err != nil {
			continue
		}
		for m := startMin; m+exp.DurationMinutes <= endMin; m += step {
			if m < dayStart || m+exp.DurationMinutes > dayEnd {
				continue
			}
			start := wallClock(day, m, loc)
			end := wallClock(day, m+exp.DurationMinutes, loc)
			slots = append(slots, buildSlot(exp, start, end, states, now))
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots
}

// wallClock returns minutes past midnight of day as a local time in loc.
func wallClock(day time.Time, minutes int, loc *time.Location) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, minutes/60, minutes%60, 0, 0, loc)
}

func buildSlot(exp models.Experience, start, end time.Time, states map[string]models.SlotState, now time.Time) models.Slot {
	id := SlotID(exp.ID, start)
	state := states[id]

	current := state.Booked + state.Held
	remaining := exp.MaxCapacity - current

	status := models.SlotOpen
	switch {
	case start.Before(now):
		status = models.SlotPassed
	case state.Blocked:
		status = models.SlotBlocked
	case remaining <= 0:
		status = models.SlotFull
	case current > 0:
		status = models.SlotPartial
	}

	return models.Slot{
		ID:                id,
		ExperienceID:      exp.ID,
		Date:              start.Format(utils.DateLayout),
		Time:              start.Format(utils.TimeLayout),
		StartTime:         start,
		EndTime:           end,
		MaxCapacity:       exp.MaxCapacity,
		CurrentBookings:   current,
		RemainingCapacity: max(0, remaining),
		Status:            status,
		IsBlocked:         state.Blocked,
		BlockReason:       state.BlockReason,
	}
}
