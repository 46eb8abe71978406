package assign_waitlist

import (
	"context"

	assignWaitlist "github.com/citaflow/CITA-SchedulingService/internal/usecase/assign_waitlist"
)

type AssignWaitlistUseCase interface {
	Execute(ctx context.Context, req *assignWaitlist.Request) (*assignWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
