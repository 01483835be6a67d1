package models

// HoldExpiryPayload is the asynq payload scheduled for when a hold lapses.
type HoldExpiryPayload struct {
	HoldID string `json:"holdId"`
	SlotID string `json:"slotId"`
}
