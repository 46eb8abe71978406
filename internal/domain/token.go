package domain

import "time"

// TokenType tags what a confirmation link is allowed to do.
type TokenType string

const (
	// TokenTypeConfirm confirms or rejects a pending appointment.
	TokenTypeConfirm TokenType = "confirm"
	// TokenTypeDelete confirms or rejects a cancellation request.
	TokenTypeDelete TokenType = "delete"
	// TokenTypeChange confirms or rejects a modified appointment.
	TokenTypeChange TokenType = "change"
	// TokenTypeWaitlist confirms or withdraws a waitlist reassignment.
	TokenTypeWaitlist TokenType = "waitlist"
)

// ParseTokenType validates a raw token type value.
func ParseTokenType(s string) (TokenType, bool) {
	switch TokenType(s) {
	case TokenTypeConfirm, TokenTypeDelete, TokenTypeChange, TokenTypeWaitlist:
		return TokenType(s), true
	default:
		return "", false
	}
}

// ConfirmationToken is a single-use expiring credential bound to exactly one
// appointment, or to one waitlist entry for the waitlist variant. The
// unused -> used transition is guarded at write time so two concurrent
// consumers can never both succeed.
type ConfirmationToken struct {
	ID    int64
	Token string
	Type  TokenType

	AppointmentID   *int64
	WaitlistEntryID *int64

	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsed reports whether the token has already been consumed.
func (t *ConfirmationToken) IsUsed() bool {
	return t.UsedAt != nil
}

// IsExpired reports whether the token is past its expiry at the given
// instant. A zero expiry counts as already expired.
func (t *ConfirmationToken) IsExpired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.After(t.ExpiresAt)
}

// ConfirmationAction is what the visitor of a confirmation link chose.
type ConfirmationAction string

const (
	ActionConfirm ConfirmationAction = "confirm"
	ActionReject  ConfirmationAction = "reject"
)

// ParseConfirmationAction validates a raw action value.
func ParseConfirmationAction(s string) (ConfirmationAction, bool) {
	switch ConfirmationAction(s) {
	case ActionConfirm, ActionReject:
		return ConfirmationAction(s), true
	default:
		return "", false
	}
}
