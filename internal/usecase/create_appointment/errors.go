package create_appointment

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrAccessDenied is returned when the target employee is outside the
	// caller's scope.
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrServiceNotFound is returned when the service is not in the
	// tenant's catalog.
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrDuplicateAppointment is returned when the identical booking
	// already exists in a blocking status.
	ErrDuplicateAppointment = errors.New("create_appointment: duplicate appointment")

	// ErrNoScheduleForDay is returned when the employee has no schedule
	// entries on the requested weekday.
	ErrNoScheduleForDay = errors.New("create_appointment: no schedule for this day")

	// ErrOutsideWorkingHours is returned when no work window contains the
	// requested slot.
	ErrOutsideWorkingHours = errors.New("create_appointment: outside working hours")

	// ErrBreakConflict is returned when every containing work window has
	// the slot overlapping its break.
	ErrBreakConflict = errors.New("create_appointment: conflicts with break")

	// ErrEmployeeOnVacation is returned when the date falls inside a
	// vacation range of the employee.
	ErrEmployeeOnVacation = errors.New("create_appointment: employee on vacation")

	// ErrEndsNextDay is returned when start plus service duration crosses
	// midnight in the originating timezone.
	ErrEndsNextDay = errors.New("create_appointment: appointment must end on the same day")

	// ErrTokenIssueFailed is returned when the appointment was created but
	// the confirmation token could not be issued. The appointment is kept;
	// the caller must retry token issuance.
	ErrTokenIssueFailed = errors.New("create_appointment: appointment created but confirmation token issuance failed")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_appointment: internal error")
)
