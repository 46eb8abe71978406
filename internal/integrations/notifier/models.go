package notifier

// Event names delivered to the webhook sink.
const (
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentModified  = "appointment.modified"
)

// AppointmentPayload is the appointment snapshot included in every event.
type AppointmentPayload struct {
	ID         int64  `json:"id"`
	CompanyID  int64  `json:"companyId"`
	EmployeeID int64  `json:"employeeId"`
	ClientID   int64  `json:"clientId"`
	ServiceID  int64  `json:"serviceId"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Status     string `json:"status"`
}

// WaitlistedClient identifies a waiting client affected by a freed slot.
// Token carries the waitlist confirmation link the client can use to claim
// the slot; empty when issuance failed for that entry.
type WaitlistedClient struct {
	EntryID  int64   `json:"entryId"`
	ClientID int64   `json:"clientId"`
	Phone    *string `json:"phone,omitempty"`
	Token    string  `json:"token,omitempty"`
}

// Payload is the body posted to the sink.
type Payload struct {
	Event             string             `json:"event"`
	Appointment       AppointmentPayload `json:"appointment"`
	WaitlistedClients []WaitlistedClient `json:"waitlistedClients,omitempty"`
}
