package act_confirmation

import (
	"context"

	consumeConfirmation "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
)

type ConfirmationUseCase interface {
	Act(ctx context.Context, req *consumeConfirmation.ActRequest) (*consumeConfirmation.ActResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
