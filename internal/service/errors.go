package service

import "errors"

// Validation errors are surfaced to the caller as user-visible messages; the
// caller keeps the in-progress input so the user can correct it.
var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrUnknownRoom      = errors.New("unknown room")
	ErrUnknownStaff     = errors.New("unknown staff member")
	ErrInvalidStatus    = errors.New("status must be booked or inquiry")
	ErrOutsideWindow    = errors.New("time is outside the operating window")
	ErrOffGrid          = errors.New("time is not on the 30-minute grid")
	ErrMissingDate      = errors.New("date is required")
	ErrBadTimeFormat    = errors.New("time must be HH:MM")

	ErrReservationNotFound = errors.New("reservation not found")
)

// IsValidationError reports whether err belongs to the validation class, as
// opposed to a storage failure or a missing record.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrInvalidTimeRange,
		ErrUnknownRoom,
		ErrUnknownStaff,
		ErrInvalidStatus,
		ErrOutsideWindow,
		ErrOffGrid,
		ErrMissingDate,
		ErrBadTimeFormat,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
