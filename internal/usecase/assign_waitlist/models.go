package assign_waitlist

import "github.com/citaflow/CITA-SchedulingService/internal/domain"

// Request asks to move a waitlisted client into a freed appointment slot.
type Request struct {
	EntryID int64
	Auth    domain.AuthContext
}

// Response carries the reassigned appointment and the fresh confirmation
// token. Token is empty when issuance failed after the reassignment; the
// error returned alongside is ErrTokenIssueFailed in that case.
type Response struct {
	Appointment *domain.Appointment
	Token       string
}
