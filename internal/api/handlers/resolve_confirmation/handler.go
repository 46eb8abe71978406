package resolve_confirmation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

const (
	msgInvalidType       = "tipo de enlace no válido"
	msgTokenNotFound     = "el enlace de confirmación no es válido"
	msgTokenUsed         = "el enlace de confirmación ya fue utilizado"
	msgTokenExpired      = "el enlace de confirmación ha caducado"
	msgNotFound          = "cita no encontrada"
	msgNoLongerAvailable = "la cita ya no está disponible"
	msgAlreadyCompleted  = "la cita ya fue realizada"
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

// Handle GET /api/v1/confirmations/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tokenValue := mux.Vars(r)["token"]

	typ, ok := domain.ParseTokenType(r.URL.Query().Get("type"))
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidType)
		return
	}

	result, err := h.useCase.Resolve(r.Context(), &consumeConfirmation.ResolveRequest{
		TokenValue: tokenValue,
		Type:       typ,
	})
	if err != nil {
		switch {
		case errors.Is(err, consumeConfirmation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgTokenNotFound)

		case errors.Is(err, consumeConfirmation.ErrTokenNotFound):
			h.logger.Warn("GET /confirmations - Token not found: type=%s", typ)
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, consumeConfirmation.ErrTokenUsed):
			handlers.RespondConflict(w, msgTokenUsed)

		case errors.Is(err, consumeConfirmation.ErrTokenExpired):
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, consumeConfirmation.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consumeConfirmation.ErrNoLongerAvailable):
			handlers.RespondConflict(w, msgNoLongerAvailable)

		case errors.Is(err, consumeConfirmation.ErrAppointmentCompleted):
			handlers.RespondConflict(w, msgAlreadyCompleted)

		default:
			h.logger.Error("GET /confirmations - Failed to resolve token: type=%s, error=%v", typ, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
