package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment is absent or
	// outside the caller's tenant.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied is returned on role or ownership violations.
	ErrAccessDenied = errors.New("access denied")

	// ErrLocked is returned when the appointment's state no longer permits
	// the requested transition.
	ErrLocked = errors.New("appointment state is locked")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected repository failures.
	ErrInternal = errors.New("service: internal error")
)
