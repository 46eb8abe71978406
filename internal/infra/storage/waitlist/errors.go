package waitlist

import "errors"

var (
	// ErrEntryNotFound is returned when no waitlist entry matches.
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrBuildQuery is returned when an SQL query cannot be built.
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery is returned when an SQL query fails to execute.
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
