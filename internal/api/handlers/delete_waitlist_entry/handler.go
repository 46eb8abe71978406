package delete_waitlist_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	waitlistService "github.com/citaflow/CITA-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidEntryID = "identificador de lista de espera no válido"
	msgEntryNotFound  = "inscripción en la lista de espera no encontrada"
	msgAccessDenied   = "no tiene permiso para gestionar la lista de espera"
)

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

// Handle DELETE /api/v1/waitlist/{entryId}
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

	if err := h.service.Withdraw(r.Context(), entryID, auth); err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/%d - Entry not found: company_id=%d", entryID, auth.CompanyID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		default:
			h.logger.Error("DELETE /waitlist/%d - Failed: error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/%d - Entry withdrawn: company_id=%d", entryID, auth.CompanyID)
	handlers.RespondNoContent(w)
}
