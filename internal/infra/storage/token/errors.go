package token

import "errors"

var (
	// ErrTokenNotFound is returned when no token matches.
	ErrTokenNotFound = errors.New("token.repository: token not found")

	// ErrAlreadyUsed is returned when the guarded mark-used update matched
	// zero rows because a concurrent consumer won the race.
	ErrAlreadyUsed = errors.New("token.repository: token already used")

	// ErrBuildQuery is returned when an SQL query cannot be built.
	ErrBuildQuery = errors.New("token.repository: failed to build query")

	// ErrExecQuery is returned when an SQL query fails to execute.
	ErrExecQuery = errors.New("token.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("token.repository: failed to scan row")
)
