package waitlist

import "errors"

var (
	// ErrAppointmentNotFound is returned when the slot to wait on is absent
	// or outside the caller's tenant.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrEntryNotFound is returned when the waitlist entry is absent or
	// outside the caller's tenant.
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected repository failures.
	ErrInternal = errors.New("waitlist: internal error")
)
