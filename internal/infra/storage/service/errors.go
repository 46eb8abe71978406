package service

import "errors"

var (
	// ErrServiceNotFound is returned when no service matches within the
	// company.
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery is returned when an SQL query cannot be built.
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery is returned when an SQL query fails to execute.
	ErrExecQuery = errors.New("service.repository: failed to execute query")
)
