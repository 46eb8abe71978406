package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "identificador de cita no válido"
	msgInvalidRequestBody   = "cuerpo de la solicitud no válido"
	msgInvalidStatus        = "estado de cita no válido"
	msgAppointmentNotFound  = "cita no encontrada"
	msgAccessDenied         = "no tiene permiso para modificar esta cita"
	msgLocked               = "el estado de la cita ya no permite esta transición"
)

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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
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

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d/status - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), &models.UpdateStatusRequest{
		AppointmentID: appointmentID,
		Status:        req.Status,
		Auth:          auth,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%d/status - Invalid status: %q", appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/status - Not found: company_id=%d", appointmentID, auth.CompanyID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/%d/status - Access denied: employee_id=%d", appointmentID, auth.EmployeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrLocked):
			h.logger.Warn("PATCH /appointments/%d/status - Locked: status=%q", appointmentID, req.Status)
			handlers.RespondConflict(w, msgLocked)

		default:
			h.logger.Error("PATCH /appointments/%d/status - Failed: error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/status - Status updated: status=%s, employee_id=%d",
		appointmentID, req.Status, auth.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, UpdateStatusResponse{ID: appointmentID, Status: req.Status})
}
