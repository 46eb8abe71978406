package waitlist

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// WaitlistRepository is the persistence surface the service needs.
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository resolves the appointment an entry binds to.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
