package consume_confirmation

import "github.com/citaflow/CITA-SchedulingService/internal/domain"

// ResolveRequest identifies a confirmation link being opened.
type ResolveRequest struct {
	TokenValue string
	Type       domain.TokenType
}

// ResolveResponse is the snapshot shown on the confirmation page.
// Appointment is set for appointment-bound tokens, WaitlistEntry for
// waitlist tokens (alongside the appointment the entry points at).
type ResolveResponse struct {
	Token         *domain.ConfirmationToken
	Appointment   *domain.Appointment
	WaitlistEntry *domain.WaitlistEntry
}

// ActRequest is the visitor's decision on a confirmation link.
type ActRequest struct {
	TokenValue string
	Type       domain.TokenType
	Action     domain.ConfirmationAction
}

// ActResponse reports the outcome of a consumed confirmation link.
// RemovedSiblings counts speculative duplicates deleted alongside a
// confirmation. NewToken is set when a waitlist confirmation issued a fresh
// confirmation token for the reassigned appointment.
type ActResponse struct {
	Action          domain.ConfirmationAction
	Appointment     *domain.Appointment
	RemovedSiblings int64
	NewToken        string
}
