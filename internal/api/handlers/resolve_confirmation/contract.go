package resolve_confirmation

import (
	"context"

	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

type ConfirmationUseCase interface {
	Resolve(ctx context.Context, req *consumeConfirmation.ResolveRequest) (*consumeConfirmation.ResolveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
