package get_employee_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidEmployeeID = "identificador de empleado no válido"
	msgInvalidStatus     = "estado de cita no válido"
	msgInvalidDateRange  = "rango de fechas no válido"
	msgAccessDenied      = "no tiene permiso para ver la agenda de este empleado"
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

// Handle GET /api/v1/employees/{employeeId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	req := &models.ListAppointmentsRequest{
		EmployeeID: employeeID,
		Auth:       auth,
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		if _, ok := domain.ParseAppointmentStatus(raw); !ok {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		req.Status = &raw
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := parseInstant(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := parseInstant(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /employees/%d/appointments - Access denied: employee_id=%d", employeeID, auth.EmployeeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)

		default:
			h.logger.Error("GET /employees/%d/appointments - Failed: error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// parseInstant accepts RFC3339 instants and bare dates.
func parseInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, raw)
}
