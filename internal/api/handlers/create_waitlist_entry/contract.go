package create_waitlist_entry

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	waitlistService "github.com/citaflow/CITA-SchedulingService/internal/service/waitlist"
)

type WaitlistService interface {
	Create(ctx context.Context, req *waitlistService.CreateRequest) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
