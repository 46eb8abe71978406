package confirmations

import "errors"

var (
	// ErrTokenNotFound is returned when no token matches the link.
	ErrTokenNotFound = errors.New("confirmations: token not found")

	// ErrTokenUsed is returned when the token was already consumed.
	ErrTokenUsed = errors.New("confirmations: token already used")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("confirmations: token expired")

	// ErrInternal is returned on unexpected repository failures.
	ErrInternal = errors.New("confirmations: internal error")
)
