package checkin

import "chequered/utils"

var (
	ErrEmptyCode        = utils.NewAppError(utils.KindInvalid, "emptyCode", "enter a code")
	ErrTicketNotFound   = utils.NewAppError(utils.KindNotFound, "ticketNotFound", "ticket not found")
	ErrTicketCancelled  = utils.NewAppError(utils.KindConflict, "ticketCancelled", "ticket has been cancelled")
	ErrAlreadyCheckedIn = utils.NewAppError(utils.KindConflict, "alreadyCheckedIn", "ticket already checked in")
	ErrWrongDay         = utils.NewAppError(utils.KindConflict, "wrongDay", "ticket is not valid today")
	ErrTooEarly         = utils.NewAppError(utils.KindConflict, "tooEarly", "too early, check-in is not open yet")
	ErrTicketExpired    = utils.NewAppError(utils.KindConflict, "ticketExpired", "ticket expired, the session has ended")
	ErrNoArrivals       = utils.NewAppError(utils.KindInvalid, "noArrivals", "select at least one arriving guest")
	ErrInvalidArrivals  = utils.NewAppError(utils.KindInvalid, "invalidArrivals", "arriving guests must be distinct attendees of the booking")
	ErrTicketChanged    = utils.NewAppError(utils.KindConflict, "ticketChanged", "ticket changed during check-in; scan it again")
)
