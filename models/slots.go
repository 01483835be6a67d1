package models

import "time"

type SlotStatus string

const (
	SlotOpen    SlotStatus = "OPEN"
	SlotPartial SlotStatus = "PARTIAL"
	SlotFull    SlotStatus = "FULL"
	SlotPassed  SlotStatus = "PASSED"
	SlotBlocked SlotStatus = "BLOCKED"
)

// SlotState holds the persisted counters for one derived slot.
type SlotState struct {
	ID           string    `bson:"_id" json:"id"`
	ExperienceID string    `bson:"experienceId" json:"experienceId"`
	Date         string    `bson:"date" json:"date"`
	Time         string    `bson:"time" json:"time"`
	Booked       int       `bson:"booked" json:"booked"`
	Held         int       `bson:"held" json:"held"`
	Blocked      bool      `bson:"blocked" json:"blocked"`
	BlockReason  string    `bson:"blockReason,omitempty" json:"blockReason,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Slot is a bookable window generated from an experience for one date.
type Slot struct {
	ID                string     `json:"id"`
	ExperienceID      string     `json:"experienceId"`
	Date              string     `json:"date"`
	Time              string     `json:"time"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           time.Time  `json:"endTime"`
	MaxCapacity       int        `json:"maxCapacity"`
	CurrentBookings   int        `json:"currentBookings"`
	RemainingCapacity int        `json:"remainingCapacity"`
	Status            SlotStatus `json:"status"`
	IsBlocked         bool       `json:"isBlocked"`
	BlockReason       string     `json:"blockReason,omitempty"`
}

// Bookable reports whether a visitor may still reserve places in the slot.
func (s Slot) Bookable() bool {
	return s.Status == SlotOpen || s.Status == SlotPartial
}

type OptionType string

const (
	OptionTogether OptionType = "TOGETHER"
	OptionSplit    OptionType = "SPLIT"
)

type SlotAssignment struct {
	Slot        Slot `json:"slot"`
	PaxToAssign int  `json:"paxToAssign" binding:"required,min=1"`
}

// SlotOption is one way of seating a party: all together or split across consecutive slots.
type SlotOption struct {
	Type        OptionType       `json:"type"`
	Description string           `json:"description"`
	Slots       []SlotAssignment `json:"slots"`
}

// AdminSlot is a slot together with the bookings currently placed in it.
type AdminSlot struct {
	Slot
	Bookings []Booking `json:"bookings"`
}
