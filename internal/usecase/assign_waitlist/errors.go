package assign_waitlist

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("assign_waitlist: invalid input data")

	// ErrEntryNotFound is returned when the waitlist entry does not exist
	// or is outside the caller's tenant.
	ErrEntryNotFound = errors.New("assign_waitlist: waitlist entry not found")

	// ErrAppointmentNotFound is returned when the bound appointment is gone.
	ErrAppointmentNotFound = errors.New("assign_waitlist: appointment not found")

	// ErrNoLongerAvailable is returned when the appointment left the freed
	// state before this assignment could claim it.
	ErrNoLongerAvailable = errors.New("assign_waitlist: appointment no longer available")

	// ErrTokenIssueFailed is returned when the appointment was reassigned
	// but the confirmation token could not be issued. The reassignment is
	// kept; compensation is a manual token reissue.
	ErrTokenIssueFailed = errors.New("assign_waitlist: appointment reassigned but token issuance failed")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("assign_waitlist: internal error")
)
