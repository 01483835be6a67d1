package booking

import "chequered/utils"

var (
	ErrInvalidDate          = utils.NewAppError(utils.KindInvalid, "invalidDate", "date must be formatted YYYY-MM-DD")
	ErrInvalidPax           = utils.NewAppError(utils.KindInvalid, "invalidPax", "party size must be at least 1")
	ErrInvalidSlotID        = utils.NewAppError(utils.KindInvalid, "invalidSlot", "slot id is malformed")
	ErrInvalidVisitor       = utils.NewAppError(utils.KindInvalid, "invalidVisitor", "visitor name and a valid email are required")
	ErrAttendeeMismatch     = utils.NewAppError(utils.KindInvalid, "attendeeMismatch", "one non-blank attendee name is required per place")
	ErrEmptyOption          = utils.NewAppError(utils.KindInvalid, "emptyOption", "booking option has no slots")
	ErrExperienceNotFound   = utils.NewAppError(utils.KindNotFound, "experienceNotFound", "experience not found")
	ErrExperienceInactive   = utils.NewAppError(utils.KindConflict, "experienceInactive", "experience is not currently bookable")
	ErrSlotNotFound         = utils.NewAppError(utils.KindNotFound, "slotNotFound", "slot does not exist for this experience and date")
	ErrSlotPassed           = utils.NewAppError(utils.KindConflict, "slotPassed", "slot has already started")
	ErrSlotBlocked          = utils.NewAppError(utils.KindConflict, "slotBlocked", "slot is closed for booking")
	ErrPartyTooLarge        = utils.NewAppError(utils.KindConflict, "partyTooLarge", "party is larger than the experience capacity")
	ErrInsufficientCapacity = utils.NewAppError(utils.KindConflict, "insufficientCapacity", "not enough places left in this slot")
	ErrHoldNotFound         = utils.NewAppError(utils.KindNotFound, "holdNotFound", "hold not found")
	ErrHoldExpired          = utils.NewAppError(utils.KindUnavailable, "holdExpired", "hold has expired; please pick a slot again")
	ErrBookingNotFound      = utils.NewAppError(utils.KindNotFound, "bookingNotFound", "ticket not found; check code or email")
	ErrAlreadyCancelled     = utils.NewAppError(utils.KindConflict, "alreadyCancelled", "this ticket has already been cancelled")
	ErrAlreadyCheckedIn     = utils.NewAppError(utils.KindConflict, "alreadyCheckedIn", "this ticket has already been used")
	ErrCancellationClosed   = utils.NewAppError(utils.KindConflict, "cancellationClosed", "the slot has started; the ticket can no longer be cancelled")
	ErrBookingChanged       = utils.NewAppError(utils.KindConflict, "bookingChanged", "the ticket was changed by someone else; look it up again")
	ErrReferenceExhausted   = utils.NewAppError(utils.KindConflict, "referenceExhausted", "could not allocate a unique reference code")
)
