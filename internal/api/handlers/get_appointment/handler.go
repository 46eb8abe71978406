package get_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "identificador de cita no válido"
	msgAppointmentNotFound  = "cita no encontrada"
	msgAccessDenied         = "no tiene permiso para ver esta cita"
)

// AppointmentResponse is the HTTP appointment representation.
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
	UpdatedAt   string  `json:"updatedAt"`
}

// FromServiceResponse converts the service model into the HTTP response.
func FromServiceResponse(a *models.AppointmentResponse) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		CompanyID:   a.CompanyID,
		EmployeeID:  a.EmployeeID,
		ClientID:    a.ClientID,
		ServiceID:   a.ServiceID,
		Title:       a.Title,
		Description: a.Description,
		StartAt:     a.StartAt.Format(time.RFC3339),
		EndAt:       a.EndAt.Format(time.RFC3339),
		Status:      a.Status,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.GetByID(r.Context(), &models.GetAppointmentRequest{
		AppointmentID: appointmentID,
		Auth:          auth,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/%d - Not found: company_id=%d", appointmentID, auth.CompanyID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/%d - Access denied: employee_id=%d", appointmentID, auth.EmployeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /appointments/%d - Failed: error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
