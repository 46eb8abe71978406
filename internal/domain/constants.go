package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultWaitlistTokenTTL is how long a waitlist confirmation link stays
// valid when the bound appointment has no usable start instant.
const DefaultWaitlistTokenTTL = 24 * time.Hour

// BlockingStatuses count toward duplicate detection: a new booking with an
// identical (company, employee, client, service, start) key is rejected
// while a sibling sits in one of these states.
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ReassignableStatuses are the states a freed appointment must be in for the
// waitlist engine to hand it to a waiting client.
var ReassignableStatuses = []AppointmentStatus{
	StatusRejected,
	StatusCancelled,
}

// CleanupStatuses are the sibling states removed by duplicate cleanup after
// a confirmation. Client id is intentionally not part of the cleanup match.
var CleanupStatuses = []AppointmentStatus{
	StatusPending,
	StatusCancelled,
}
