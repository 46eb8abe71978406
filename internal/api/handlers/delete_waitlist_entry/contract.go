package delete_waitlist_entry

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

type WaitlistService interface {
	Withdraw(ctx context.Context, entryID int64, auth domain.AuthContext) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
