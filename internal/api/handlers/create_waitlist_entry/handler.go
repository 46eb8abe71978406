package create_waitlist_entry

import (
	"errors"
	"net/http"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	waitlistService "github.com/citaflow/CITA-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody  = "cuerpo de la solicitud no válido"
	msgInvalidInput        = "datos de la lista de espera no válidos"
	msgAppointmentNotFound = "cita no encontrada"
	msgAccessDenied        = "no tiene permiso para gestionar la lista de espera"
)

// CreateEntryRequest is the HTTP request model.
type CreateEntryRequest struct {
	AppointmentID int64   `json:"appointmentId"`
	ClientID      int64   `json:"clientId"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
}

// EntryResponse is the HTTP response model.
type EntryResponse struct {
	ID            int64   `json:"id"`
	AppointmentID int64   `json:"appointmentId"`
	ClientID      int64   `json:"clientId"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req CreateEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Create(r.Context(), &waitlistService.CreateRequest{
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		ClientPhone:   req.ClientPhone,
		Auth:          auth,
	})
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, waitlistService.ErrAppointmentNotFound):
			h.logger.Warn("POST /waitlist - Appointment not found: appointment_id=%d, company_id=%d",
				req.AppointmentID, auth.CompanyID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("POST /waitlist - Failed: appointment_id=%d, error=%v", req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created: entry_id=%d, appointment_id=%d, client_id=%d",
		entry.ID, entry.AppointmentID, entry.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, EntryResponse{
		ID:            entry.ID,
		AppointmentID: entry.AppointmentID,
		ClientID:      entry.ClientID,
		ClientPhone:   entry.ClientPhone,
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
	})
}
