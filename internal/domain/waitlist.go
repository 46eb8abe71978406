package domain

import "time"

// WaitlistEntry binds a waiting client to the specific appointment they want
// to take over if it frees up. Entries are deleted once fulfilled or when
// the client withdraws.
type WaitlistEntry struct {
	ID            int64
	CompanyID     int64
	AppointmentID int64
	ClientID      int64
	ClientPhone   *string
	CreatedAt     time.Time
}
