package models

import "time"

// DaySchedule overrides opening for a single date. A closed day yields no slots for any
// experience; an open day with StartTime/EndTime clips every experience's windows.
type DaySchedule struct {
	Date      string    `bson:"date" json:"date"`
	StartTime string    `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	IsOpen    bool      `bson:"isOpen" json:"isOpen"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
