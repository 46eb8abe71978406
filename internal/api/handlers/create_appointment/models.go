package create_appointment

import (
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	createAppointment "github.com/citaflow/CITA-SchedulingService/internal/usecase/create_appointment"
	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

// CreateAppointmentRequest is the HTTP request model.
type CreateAppointmentRequest struct {
	EmployeeID     int64   `json:"employeeId"`
	ClientID       int64   `json:"clientId"`
	ServiceID      int64   `json:"serviceId"`
	Date           string  `json:"date"`      // "2026-03-16"
	StartTime      string  `json:"startTime"` // "10:00"
	TimezoneOffset int     `json:"timezoneOffsetMinutes"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// AppointmentResponse is the appointment part of the HTTP response.
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	CompanyID   int64   `json:"companyId"`
	EmployeeID  int64   `json:"employeeId"`
	ClientID    int64   `json:"clientId"`
	ServiceID   int64   `json:"serviceId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartAt     string  `json:"startAt"`
	EndAt       string  `json:"endAt"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// CreateAppointmentResponse is the HTTP response model. Warning is set when
// the appointment was created but the confirmation link could not be issued.
type CreateAppointmentResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Token       string              `json:"token,omitempty"`
	TokenType   string              `json:"tokenType,omitempty"`
	ExpiresAt   string              `json:"expiresAt,omitempty"`
	Warning     string              `json:"warning,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest(auth domain.AuthContext) (*createAppointment.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		EmployeeID:     r.EmployeeID,
		ClientID:       r.ClientID,
		ServiceID:      r.ServiceID,
		Title:          r.Title,
		Description:    r.Description,
		Date:           r.Date,
		StartTime:      startTime,
		TimezoneOffset: r.TimezoneOffset,
		Auth:           auth,
	}, nil
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	out := &CreateAppointmentResponse{
		Appointment: AppointmentResponse{
			ID:          resp.Appointment.ID,
			CompanyID:   resp.Appointment.CompanyID,
			EmployeeID:  resp.Appointment.EmployeeID,
			ClientID:    resp.Appointment.ClientID,
			ServiceID:   resp.Appointment.ServiceID,
			Title:       resp.Appointment.Title,
			Description: resp.Appointment.Description,
			StartAt:     resp.Appointment.StartAt.Format(time.RFC3339),
			EndAt:       resp.Appointment.EndAt.Format(time.RFC3339),
			Status:      string(resp.Appointment.Status),
			CreatedAt:   resp.Appointment.CreatedAt.Format(time.RFC3339),
		},
		Token:     resp.Token,
		TokenType: string(resp.TokenType),
	}
	if !resp.ExpiresAt.IsZero() {
		out.ExpiresAt = resp.ExpiresAt.Format(time.RFC3339)
	}
	return out
}
