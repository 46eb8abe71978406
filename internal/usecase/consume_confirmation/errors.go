package consume_confirmation

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("consume_confirmation: invalid input data")

	// ErrTokenNotFound is returned when no token matches the link.
	ErrTokenNotFound = errors.New("consume_confirmation: token not found")

	// ErrTokenUsed is returned when the token was already consumed.
	ErrTokenUsed = errors.New("consume_confirmation: token already used")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("consume_confirmation: token expired")

	// ErrAppointmentNotFound is returned when the bound appointment or
	// waitlist entry no longer exists.
	ErrAppointmentNotFound = errors.New("consume_confirmation: appointment not found")

	// ErrAppointmentCompleted is returned when the bound appointment is
	// completed and therefore locked against any transition.
	ErrAppointmentCompleted = errors.New("consume_confirmation: appointment already completed")

	// ErrNoLongerAvailable is returned when a concurrent actor moved the
	// appointment out of the expected state first.
	ErrNoLongerAvailable = errors.New("consume_confirmation: appointment no longer available")

	// ErrTokenIssueFailed is returned when a waitlist confirmation
	// reassigned the appointment but the fresh confirmation token could not
	// be issued. The reassignment is kept.
	ErrTokenIssueFailed = errors.New("consume_confirmation: appointment reassigned but token issuance failed")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("consume_confirmation: internal error")
)
