package act_confirmation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

const (
	msgInvalidType        = "tipo de enlace no válido"
	msgInvalidRequestBody = "cuerpo de la solicitud no válido"
	msgInvalidAction      = "acción no válida, se espera confirm o reject"
	msgTokenNotFound      = "el enlace de confirmación no es válido"
	msgTokenUsed          = "el enlace de confirmación ya fue utilizado"
	msgTokenExpired       = "el enlace de confirmación ha caducado"
	msgNotFound           = "cita no encontrada"
	msgNoLongerAvailable  = "la cita ya no está disponible"
	msgAlreadyCompleted   = "la cita ya fue realizada"
	msgTokenIssueFailed   = "la cita fue reasignada pero no se pudo generar el nuevo enlace de confirmación"

	msgConfirmed = "la cita ha sido confirmada"
	msgRejected  = "la cita ha sido rechazada"
	msgCancelled = "la cita ha sido cancelada"
	msgKept      = "la cita se mantiene sin cambios"
	msgAssigned  = "la cita ha sido asignada, revise el nuevo enlace de confirmación"
	msgWithdrawn = "su inscripción en la lista de espera ha sido retirada"
)

type Handler struct {
	useCase ConfirmationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/confirmations/{token}/actions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tokenValue := mux.Vars(r)["token"]

	typ, ok := domain.ParseTokenType(r.URL.Query().Get("type"))
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidType)
		return
	}

	var req ActRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /confirmations/actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	action, ok := domain.ParseConfirmationAction(req.Action)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	result, err := h.useCase.Act(r.Context(), &consumeConfirmation.ActRequest{
		TokenValue: tokenValue,
		Type:       typ,
		Action:     action,
	})
	if err != nil {
		switch {
		case errors.Is(err, consumeConfirmation.ErrTokenIssueFailed):
			// The reassignment is kept; only the fresh link is missing.
			h.logger.Error("POST /confirmations/actions - Reassigned without token: type=%s", typ)
			handlers.RespondError(w, http.StatusInternalServerError, msgTokenIssueFailed)

		case errors.Is(err, consumeConfirmation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgTokenNotFound)

		case errors.Is(err, consumeConfirmation.ErrTokenNotFound):
			h.logger.Warn("POST /confirmations/actions - Token not found: type=%s", typ)
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, consumeConfirmation.ErrTokenUsed):
			h.logger.Warn("POST /confirmations/actions - Token already used: type=%s", typ)
			handlers.RespondConflict(w, msgTokenUsed)

		case errors.Is(err, consumeConfirmation.ErrTokenExpired):
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, consumeConfirmation.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consumeConfirmation.ErrAppointmentCompleted):
			h.logger.Warn("POST /confirmations/actions - Appointment completed: type=%s", typ)
			handlers.RespondConflict(w, msgAlreadyCompleted)

		case errors.Is(err, consumeConfirmation.ErrNoLongerAvailable):
			h.logger.Warn("POST /confirmations/actions - No longer available: type=%s", typ)
			handlers.RespondConflict(w, msgNoLongerAvailable)

		default:
			h.logger.Error("POST /confirmations/actions - Failed: type=%s, action=%s, error=%v", typ, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /confirmations/actions - Action applied: type=%s, action=%s", typ, action)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, outcomeMessage(typ, action)))
}

// outcomeMessage picks the user-facing text for a consumed link.
func outcomeMessage(typ domain.TokenType, action domain.ConfirmationAction) string {
	switch typ {
	case domain.TokenTypeDelete:
		if action == domain.ActionConfirm {
			return msgCancelled
		}
		return msgKept
	case domain.TokenTypeWaitlist:
		if action == domain.ActionConfirm {
			return msgAssigned
		}
		return msgWithdrawn
	default:
		if action == domain.ActionConfirm {
			return msgConfirmed
		}
		return msgRejected
	}
}
