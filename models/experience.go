package models

import "time"

// TimeInterval is a daily operating window in HH:mm.
type TimeInterval struct {
	StartTime string `bson:"startTime" json:"startTime" binding:"required"`
	EndTime   string `bson:"endTime" json:"endTime" binding:"required"`
}

// Experience is a bookable activity definition. Slots are derived from it, never stored.
type Experience struct {
	ID              string         `bson:"id" json:"id"`
	Name            string         `bson:"name" json:"name" binding:"required"`
	Description     string         `bson:"description" json:"description"`
	Timezone        string         `bson:"timezone,omitempty" json:"timezone,omitempty"`
	MaxCapacity     int            `bson:"maxCapacity" json:"maxCapacity"`
	DurationMinutes int            `bson:"durationMinutes" json:"durationMinutes"`
	OffsetMinutes   int            `bson:"offsetMinutes" json:"offsetMinutes"` // gap between the end of one slot and the next start
	Color           string         `bson:"color,omitempty" json:"color,omitempty"`
	IsActive        bool           `bson:"isActive" json:"isActive"`
	StartDate       string         `bson:"startDate,omitempty" json:"startDate,omitempty"` // YYYY-MM-DD, inclusive
	EndDate         string         `bson:"endDate,omitempty" json:"endDate,omitempty"`     // YYYY-MM-DD, inclusive
	TimeIntervals   []TimeInterval `bson:"timeIntervals" json:"timeIntervals"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Availability labels shown next to an experience for a given party size.
const (
	LabelAvailable = "AVAILABLE"
	LabelSoldOut   = "SOLD OUT"
)

// ExperienceAvailability is the visitor-facing summary of an experience for a party.
type ExperienceAvailability struct {
	Experience Experience `json:"experience"`
	Available  bool       `json:"available"`
	Label      string     `json:"label"`
	NextSlot   *Slot      `json:"nextSlot,omitempty"`
}
