package models

import (
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// GetAppointmentRequest asks for one appointment within the caller's scope.
type GetAppointmentRequest struct {
	AppointmentID int64
	Auth          domain.AuthContext
}

// ListAppointmentsRequest asks for an employee's appointments.
type ListAppointmentsRequest struct {
	EmployeeID int64
	Status     *string
	From       *time.Time
	To         *time.Time
	Auth       domain.AuthContext
}

// UpdateStatusRequest moves an appointment to a new lifecycle state.
type UpdateStatusRequest struct {
	AppointmentID int64
	Status        string
	Auth          domain.AuthContext
}

// AppointmentResponse is the service-level appointment representation.
type AppointmentResponse struct {
	ID          int64
	CompanyID   int64
	EmployeeID  int64
	ClientID    int64
	ServiceID   int64
	Title       *string
	Description *string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppointmentListResponse wraps a listing.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse
	Total        int
}

// FromDomainAppointment converts a domain appointment.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		CompanyID:   a.CompanyID,
		EmployeeID:  a.EmployeeID,
		ClientID:    a.ClientID,
		ServiceID:   a.ServiceID,
		Title:       a.Title,
		Description: a.Description,
		StartAt:     a.StartAt,
		EndAt:       a.EndAt,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainAppointmentList converts a domain appointment slice.
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = FromDomainAppointment(a)
	}
	return &AppointmentListResponse{
		Appointments: out,
		Total:        len(out),
	}
}
