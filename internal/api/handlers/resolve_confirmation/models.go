package resolve_confirmation

import (
	"time"

	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

// AppointmentView is the appointment snapshot shown on the confirmation page.
type AppointmentView struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employeeId"`
	ServiceID  int64   `json:"serviceId"`
	Title      *string `json:"title,omitempty"`
	StartAt    string  `json:"startAt"`
	EndAt      string  `json:"endAt"`
	Status     string  `json:"status"`
}

// WaitlistEntryView is the waitlist snapshot for "espera" links.
type WaitlistEntryView struct {
	ID            int64 `json:"id"`
	AppointmentID int64 `json:"appointmentId"`
}

// ResolveResponse is the HTTP response model.
type ResolveResponse struct {
	TokenID       int64              `json:"tokenId"`
	Type          string             `json:"type"`
	ExpiresAt     string             `json:"expiresAt"`
	Appointment   *AppointmentView   `json:"appointment,omitempty"`
	WaitlistEntry *WaitlistEntryView `json:"waitlistEntry,omitempty"`
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *consumeConfirmation.ResolveResponse) *ResolveResponse {
	out := &ResolveResponse{
		TokenID:   resp.Token.ID,
		Type:      string(resp.Token.Type),
		ExpiresAt: resp.Token.ExpiresAt.Format(time.RFC3339),
	}
	if resp.Appointment != nil {
		out.Appointment = &AppointmentView{
			ID:         resp.Appointment.ID,
			EmployeeID: resp.Appointment.EmployeeID,
			ServiceID:  resp.Appointment.ServiceID,
			Title:      resp.Appointment.Title,
			StartAt:    resp.Appointment.StartAt.Format(time.RFC3339),
			EndAt:      resp.Appointment.EndAt.Format(time.RFC3339),
			Status:     string(resp.Appointment.Status),
		}
	}
	if resp.WaitlistEntry != nil {
		out.WaitlistEntry = &WaitlistEntryView{
			ID:            resp.WaitlistEntry.ID,
			AppointmentID: resp.WaitlistEntry.AppointmentID,
		}
	}
	return out
}
