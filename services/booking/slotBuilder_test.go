package booking

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"chequered/models"
)

func slotTimes(slots []models.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var earlyMorning = time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

func TestGenerateSlotsWalksIntervalWithOffset(t *testing.T) {
	slots := GenerateSlotsForDate(immersive(), testDay, nil, nil, earlyMorning, time.UTC)

	want := []string{"09:00", "09:45"}
	if got := slotTimes(slots); !equalStrings(got, want) {
		t.Fatalf("slot times = %v, want %v", got, want)
	}
	if slots[0].ID != "exp-immersive-20260310-0900" {
		t.Fatalf("slot id = %q", slots[0].ID)
	}
	if !slots[0].EndTime.Equal(slots[0].StartTime.Add(30 * time.Minute)) {
		t.Fatalf("slot end = %v, want start+30m", slots[0].EndTime)
	}
	for _, s := range slots {
		if s.Status != models.SlotOpen || s.RemainingCapacity != 4 {
			t.Fatalf("slot %s: status %s remaining %d, want OPEN/4", s.ID, s.Status, s.RemainingCapacity)
		}
	}
}

func TestGenerateSlotsDefaultWindow(t *testing.T) {
	exp := models.Experience{ID: "x", MaxCapacity: 2, DurationMinutes: 60, IsActive: true}
	slots := GenerateSlotsForDate(exp, testDay, nil, nil, earlyMorning, time.UTC)

	if len(slots) != 9 {
		t.Fatalf("got %d slots in the default window, want 9", len(slots))
	}
	if slots[0].Time != "09:00" || slots[len(slots)-1].Time != "17:00" {
		t.Fatalf("default window slots run %s..%s, want 09:00..17:00", slots[0].Time, slots[len(slots)-1].Time)
	}
}

func TestGenerateSlotsSortsAcrossIntervals(t *testing.T) {
	exp := immersive()
	exp.TimeIntervals = []models.TimeInterval{
		{StartTime: "14:00", EndTime: "14:30"},
		{StartTime: "09:00", EndTime: "09:30"},
	}
	slots := GenerateSlotsForDate(exp, testDay, nil, nil, earlyMorning, time.UTC)
	if got := slotTimes(slots); !equalStrings(got, []string{"09:00", "14:00"}) {
		t.Fatalf("slot times = %v", got)
	}
}

func TestGenerateSlotsNone(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Experience)
		schedule *models.DaySchedule
	}{
		{name: "inactive", mutate: func(e *models.Experience) { e.IsActive = false }},
		{name: "before start date", mutate: func(e *models.Experience) { e.StartDate = "2026-03-11" }},
		{name: "after end date", mutate: func(e *models.Experience) { e.EndDate = "2026-03-09" }},
		{name: "zero duration", mutate: func(e *models.Experience) { e.DurationMinutes = 0 }},
		{name: "closed day", schedule: &models.DaySchedule{Date: testDay, IsOpen: false}},
		{name: "interval shorter than duration", mutate: func(e *models.Experience) {
			e.TimeIntervals = []models.TimeInterval{{StartTime: "09:00", EndTime: "09:20"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := immersive()
			if tt.mutate != nil {
				tt.mutate(&exp)
			}
			if slots := GenerateSlotsForDate(exp, testDay, tt.schedule, nil, earlyMorning, time.UTC); len(slots) != 0 {
				t.Fatalf("got %d slots, want none", len(slots))
			}
		})
	}
}

func TestGenerateSlotsInclusiveDateRange(t *testing.T) {
	exp := immersive()
	exp.StartDate, exp.EndDate = testDay, testDay
	if slots := GenerateSlotsForDate(exp, testDay, nil, nil, earlyMorning, time.UTC); len(slots) != 2 {
		t.Fatalf("got %d slots on a single-day range, want 2", len(slots))
	}
}

func TestGenerateSlotsClippedByDaySchedule(t *testing.T) {
	schedule := &models.DaySchedule{Date: testDay, IsOpen: true, StartTime: "09:30", EndTime: "18:00"}
	slots := GenerateSlotsForDate(immersive(), testDay, schedule, nil, earlyMorning, time.UTC)
	if got := slotTimes(slots); !equalStrings(got, []string{"09:45"}) {
		t.Fatalf("slot times = %v, want [09:45]", got)
	}
}

func TestGenerateSlotsStatusPrecedence(t *testing.T) {
	first := "exp-immersive-20260310-0900"
	second := "exp-immersive-20260310-0945"
	now := time.Date(2026, 3, 10, 9, 10, 0, 0, time.UTC)

	tests := []struct {
		name   string
		states map[string]models.SlotState
		id     string
		want   models.SlotStatus
	}{
		{"passed beats blocked", map[string]models.SlotState{first: {Blocked: true}}, first, models.SlotPassed},
		{"blocked beats full", map[string]models.SlotState{second: {Blocked: true, Booked: 4}}, second, models.SlotBlocked},
		{"full", map[string]models.SlotState{second: {Booked: 3, Held: 1}}, second, models.SlotFull},
		{"partial", map[string]models.SlotState{second: {Held: 1}}, second, models.SlotPartial},
		{"open", nil, second, models.SlotOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlotsForDate(immersive(), testDay, nil, tt.states, now, time.UTC)
			for _, s := range slots {
				if s.ID == tt.id {
					if s.Status != tt.want {
						t.Fatalf("status = %s, want %s", s.Status, tt.want)
					}
					return
				}
			}
			t.Fatalf("slot %s not generated", tt.id)
		})
	}
}

func TestGenerateSlotsCounters(t *testing.T) {
	states := map[string]models.SlotState{"exp-immersive-20260310-0900": {Booked: 2, Held: 3}}
	slots := GenerateSlotsForDate(immersive(), testDay, nil, states, earlyMorning, time.UTC)
	if slots[0].CurrentBookings != 5 || slots[0].RemainingCapacity != 0 {
		t.Fatalf("current %d remaining %d, want 5 and 0", slots[0].CurrentBookings, slots[0].RemainingCapacity)
	}
}

func TestGenerateSlotsUsesExperienceTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	slots := GenerateSlotsForDate(immersive(), testDay, nil, nil, earlyMorning, loc)
	// 09:00 local is 07:00 UTC, which is not before the 07:00 UTC clock.
	if slots[0].Status != models.SlotOpen {
		t.Fatalf("status = %s, want OPEN", slots[0].Status)
	}
	if slots[0].ID != "exp-immersive-20260310-0900" {
		t.Fatalf("slot id = %q, want local clock in the id", slots[0].ID)
	}
}

func TestGenerateSlotsAcrossDSTChange(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	for _, date := range []string{"2026-03-29", "2026-10-25"} {
		slots := GenerateSlotsForDate(immersive(), date, nil, nil, earlyMorning, rome)
		if got := slotTimes(slots); !equalStrings(got, []string{"09:00", "09:45"}) {
			t.Fatalf("%s: slot times = %v, want [09:00 09:45]", date, got)
		}
		compact := date[:4] + date[5:7] + date[8:]
		if slots[0].ID != "exp-immersive-"+compact+"-0900" {
			t.Fatalf("%s: slot id = %q", date, slots[0].ID)
		}
		last := slots[len(slots)-1]
		if last.EndTime.In(rome).Format("15:04") != "10:15" {
			t.Fatalf("%s: last slot ends %s, want 10:15", date, last.EndTime.In(rome).Format("15:04"))
		}
	}
}

func TestParseSlotID(t *testing.T) {
	expID, date, clock, err := ParseSlotID("a-b-c-20260310-0945")
	if err != nil {
		t.Fatalf("ParseSlotID: %v", err)
	}
	if expID != "a-b-c" || date != "2026-03-10" || clock != "09:45" {
		t.Fatalf("got (%q, %q, %q)", expID, date, clock)
	}

	for _, bad := range []string{"", "nope", "-20260310-0945", "exp-2026031-0900", "exp-20261310-0900", "exp_20260310-0900"} {
		if _, _, _, err := ParseSlotID(bad); !errors.Is(err, ErrInvalidSlotID) {
			t.Errorf("ParseSlotID(%q) err = %v, want ErrInvalidSlotID", bad, err)
		}
	}
}

func TestSlotIDRoundTrip(t *testing.T) {
	start := time.Date(2026, 12, 1, 15, 5, 0, 0, time.UTC)
	id := SlotID("vr-01", start)
	expID, date, clock, err := ParseSlotID(id)
	if err != nil || expID != "vr-01" || date != "2026-12-01" || clock != "15:05" {
		t.Fatalf("ParseSlotID(%q) = %q %q %q %v", id, expID, date, clock, err)
	}
}
