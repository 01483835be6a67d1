package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCheckedIn BookingStatus = "CHECKED_IN"
)

// Booking is a visitor's reservation against a single slot.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	SlotID           string        `bson:"slotId" json:"slotId"`
	ExperienceID     string        `bson:"experienceId" json:"experienceId"`
	ExperienceName   string        `bson:"experienceName,omitempty" json:"experienceName,omitempty"`
	Date             string        `bson:"date" json:"date"` // YYYY-MM-DD in the experience timezone
	Time             string        `bson:"time" json:"time"` // HH:mm
	Pax              int           `bson:"pax" json:"pax"`
	OriginalPax      int           `bson:"originalPax" json:"originalPax"` // party size before any reduction at the gate
	VisitorName      string        `bson:"visitorName" json:"visitorName"`
	VisitorEmail     string        `bson:"visitorEmail" json:"visitorEmail"`
	AttendeeNames    []string      `bson:"attendeeNames" json:"attendeeNames"`
	ReferenceCode    string        `bson:"referenceCode" json:"referenceCode"`
	Status           BookingStatus `bson:"status" json:"status"`
	CheckedIn        bool          `bson:"checkedIn" json:"checkedIn"`
	ArrivedAttendees []int         `bson:"arrivedAttendees,omitempty" json:"arrivedAttendees,omitempty"`
	CheckedInAt      *time.Time    `bson:"checkedInAt,omitempty" json:"checkedInAt,omitempty"`
	CancelledAt      *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
}

// VisitorDetails is what the visitor fills in before a booking is confirmed.
type VisitorDetails struct {
	VisitorName   string   `json:"visitorName" binding:"required"`
	VisitorEmail  string   `json:"visitorEmail" binding:"required,email"`
	AttendeeNames []string `json:"attendeeNames" binding:"required,min=1"`
}

// Hold reserves capacity on a slot while the visitor completes their details.
type Hold struct {
	ID           string    `json:"id"`
	SlotID       string    `json:"slotId"`
	ExperienceID string    `json:"experienceId"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Pax          int       `json:"pax"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
