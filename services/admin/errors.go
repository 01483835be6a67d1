package admin

import "chequered/utils"

var (
	ErrExperienceNotFound = utils.NewAppError(utils.KindNotFound, "experienceNotFound", "experience not found")
	ErrInvalidRange       = utils.NewAppError(utils.KindInvalid, "invalidRange", "from and to must be YYYY-MM-DD with from <= to")
	ErrResetFailed        = utils.NewAppError(utils.KindConflict, "resetFailed", "system reset did not complete; run it again")
)

func invalidExperience(message string) error {
	return utils.NewAppError(utils.KindInvalid, "invalidExperience", message)
}

func invalidSchedule(message string) error {
	return utils.NewAppError(utils.KindInvalid, "invalidSchedule", message)
}
