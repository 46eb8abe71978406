package act_confirmation

import (
	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

// ActRequest is the HTTP request model.
type ActRequest struct {
	Action string `json:"action"` // "confirm" | "reject"
}

// ActResponse is the HTTP response model. Token carries the fresh
// confirmation link a waitlist acceptance generates.
type ActResponse struct {
	Action            string `json:"action"`
	AppointmentStatus string `json:"appointmentStatus,omitempty"`
	Message           string `json:"message"`
	RemovedDuplicates int64  `json:"removedDuplicates,omitempty"`
	Token             string `json:"token,omitempty"`
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *consumeConfirmation.ActResponse, message string) *ActResponse {
	out := &ActResponse{
		Action:            string(resp.Action),
		Message:           message,
		RemovedDuplicates: resp.RemovedSiblings,
		Token:             resp.NewToken,
	}
	if resp.Appointment != nil {
		out.AppointmentStatus = string(resp.Appointment.Status)
	}
	return out
}
