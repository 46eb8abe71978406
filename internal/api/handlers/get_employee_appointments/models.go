package get_employee_appointments

import (
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments/models"
)

// AppointmentResponse is one listed appointment.
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	EmployeeID  int64   `json:"employeeId"`
	ClientID    int64   `json:"clientId"`
	ServiceID   int64   `json:"serviceId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartAt     string  `json:"startAt"`
	EndAt       string  `json:"endAt"`
	Status      string  `json:"status"`
}

// ListResponse is the HTTP listing model.
type ListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromServiceResponse converts the service listing into the HTTP response.
func FromServiceResponse(list *models.AppointmentListResponse) *ListResponse {
	out := &ListResponse{
		Appointments: make([]*AppointmentResponse, 0, len(list.Appointments)),
		Total:        list.Total,
	}
	for _, a := range list.Appointments {
		out.Appointments = append(out.Appointments, &AppointmentResponse{
			ID:          a.ID,
			EmployeeID:  a.EmployeeID,
			ClientID:    a.ClientID,
			ServiceID:   a.ServiceID,
			Title:       a.Title,
			Description: a.Description,
			StartAt:     a.StartAt.Format(time.RFC3339),
			EndAt:       a.EndAt.Format(time.RFC3339),
			Status:      a.Status,
		})
	}
	return out
}
