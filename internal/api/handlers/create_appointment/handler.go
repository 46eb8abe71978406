package create_appointment

import (
	"errors"
	"net/http"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	createAppointment "github.com/citaflow/CITA-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "cuerpo de la solicitud no válido"
	msgInvalidTime         = "formato de hora no válido, se espera HH:MM"
	msgInvalidInput        = "datos de la cita no válidos"
	msgAccessDenied        = "no tiene permiso para gestionar la agenda de este empleado"
	msgServiceNotFound     = "servicio no encontrado"
	msgDuplicate           = "ya existe una cita idéntica para este horario"
	msgNoScheduleForDay    = "el empleado no tiene horario para ese día"
	msgOutsideWorkingHours = "el horario solicitado está fuera de la jornada laboral"
	msgBreakConflict       = "el horario solicitado coincide con el descanso del empleado"
	msgOnVacation          = "el empleado está de vacaciones en esa fecha"
	msgEndsNextDay         = "la cita debe terminar el mismo día en que empieza"
	msgTokenIssueFailed    = "la cita fue creada pero no se pudo generar el enlace de confirmación"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(auth)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrTokenIssueFailed):
			// The appointment exists; the caller must retry token issuance.
			h.logger.Error("POST /appointments - Created without token: appointment_id=%d", result.Appointment.ID)
			response := FromUseCaseResponse(result)
			response.Warning = msgTokenIssueFailed
			handlers.RespondJSON(w, http.StatusCreated, response)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: employee_id=%d, company_id=%d", req.EmployeeID, auth.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d, company_id=%d", req.ServiceID, auth.CompanyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrDuplicateAppointment):
			h.logger.Warn("POST /appointments - Duplicate: employee_id=%d, client_id=%d", req.EmployeeID, req.ClientID)
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, createAppointment.ErrNoScheduleForDay):
			h.logger.Warn("POST /appointments - No schedule: employee_id=%d, date=%s", req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgNoScheduleForDay)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: employee_id=%d, date=%s %s", req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrBreakConflict):
			h.logger.Warn("POST /appointments - Break conflict: employee_id=%d, date=%s %s", req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgBreakConflict)

		case errors.Is(err, createAppointment.ErrEmployeeOnVacation):
			h.logger.Warn("POST /appointments - On vacation: employee_id=%d, date=%s", req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgOnVacation)

		case errors.Is(err, createAppointment.ErrEndsNextDay):
			h.logger.Warn("POST /appointments - Ends next day: employee_id=%d, date=%s %s", req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgEndsNextDay)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, employee_id=%d, client_id=%d",
		result.Appointment.ID, req.EmployeeID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
