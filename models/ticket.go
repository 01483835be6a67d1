package models

// TicketPayload is the JSON encoded in a ticket's QR code.
type TicketPayload struct {
	ID  string `json:"id"`
	Ref string `json:"ref"`
}

// CheckInResult reports the outcome of a gate check-in.
type CheckInResult struct {
	Booking   Booking `json:"booking"`
	CheckedIn int     `json:"checkedIn"`
	Released  int     `json:"released"`
	Message   string  `json:"message"`
}
