package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a tenant-owned booking of an employee for a client.
// Start and end are absolute UTC instants; end is always start plus the
// service duration and falls on the same calendar day as start in the
// timezone the booking was made from.
type Appointment struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	ClientID   int64
	ServiceID  int64

	Title       *string
	Description *string

	StartAt time.Time
	EndAt   time.Time
	Status  AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the appointment is locked against further
// transitions. Only completed appointments are terminal.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted
}

// IsBlocking reports whether the appointment counts toward duplicate
// detection of new bookings for the same slot.
func (a *Appointment) IsBlocking() bool {
	for _, s := range BlockingStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving to next.
//
//	pending   -> confirmed | rejected
//	confirmed -> completed | cancelled
//	any non-terminal state -> pending (explicit staff action or reassignment)
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}

	switch next {
	case StatusPending:
		return true
	case StatusConfirmed, StatusRejected:
		return a.Status == StatusPending
	case StatusCompleted, StatusCancelled:
		return a.Status == StatusConfirmed
	default:
		return false
	}
}

// ParseAppointmentStatus validates a raw status value.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	CompanyID  int64
	EmployeeID *int64
	Status     *AppointmentStatus
	From       *time.Time
	To         *time.Time
}

// DuplicateKey identifies the exact booking a duplicate-submission guard
// matches on. Client is part of the key for detection but deliberately NOT
// part of the cleanup key used after confirmation.
type DuplicateKey struct {
	CompanyID  int64
	EmployeeID int64
	ClientID   int64
	ServiceID  int64
	StartAt    time.Time
}
