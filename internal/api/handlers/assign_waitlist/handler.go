package assign_waitlist

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	assignWaitlist "github.com/citaflow/CITA-SchedulingService/internal/usecase/assign_waitlist"
)

const (
	msgInvalidEntryID      = "identificador de lista de espera no válido"
	msgEntryNotFound       = "inscripción en la lista de espera no encontrada"
	msgAppointmentNotFound = "cita no encontrada"
	msgNoLongerAvailable   = "la cita ya no está disponible"
	msgAccessDenied        = "no tiene permiso para gestionar la lista de espera"
	msgTokenIssueFailed    = "la cita fue reasignada pero no se pudo generar el enlace de confirmación"
)

// AssignResponse is the HTTP response model.
type AssignResponse struct {
	Token         string `json:"token,omitempty"`
	AppointmentID int64  `json:"appointmentId"`
	ClientID      int64  `json:"clientId"`
	Status        string `json:"status"`
	StartAt       string `json:"startAt"`
}

type Handler struct {
	useCase AssignWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase AssignWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/{entryId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignWaitlist.Request{
		EntryID: entryID,
		Auth:    auth,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignWaitlist.ErrTokenIssueFailed):
			// The reassignment is kept; only the link is missing.
			h.logger.Error("POST /waitlist/%d/assign - Reassigned without token: appointment_id=%d",
				entryID, result.Appointment.ID)
			handlers.RespondError(w, http.StatusInternalServerError, msgTokenIssueFailed)

		case errors.Is(err, assignWaitlist.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		case errors.Is(err, assignWaitlist.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/%d/assign - Entry not found: company_id=%d", entryID, auth.CompanyID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, assignWaitlist.ErrAppointmentNotFound):
			h.logger.Warn("POST /waitlist/%d/assign - Appointment not found: company_id=%d", entryID, auth.CompanyID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, assignWaitlist.ErrNoLongerAvailable):
			h.logger.Warn("POST /waitlist/%d/assign - No longer available: company_id=%d", entryID, auth.CompanyID)
			handlers.RespondConflict(w, msgNoLongerAvailable)

		default:
			h.logger.Error("POST /waitlist/%d/assign - Failed: error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/%d/assign - Assigned: appointment_id=%d, client_id=%d",
		entryID, result.Appointment.ID, result.Appointment.ClientID)
	handlers.RespondJSON(w, http.StatusOK, AssignResponse{
		Token:         result.Token,
		AppointmentID: result.Appointment.ID,
		ClientID:      result.Appointment.ClientID,
		Status:        string(result.Appointment.Status),
		StartAt:       result.Appointment.StartAt.Format(time.RFC3339),
	})
}
