package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment matches.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrNotAvailable is returned when a guarded update matched zero rows
	// because the appointment already left the expected state.
	ErrNotAvailable = errors.New("appointment.repository: appointment no longer in expected state")

	// ErrBuildQuery is returned when an SQL query cannot be built.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when an SQL query fails to execute.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
