package appointments

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// AppointmentRepository is the persistence surface the service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatusIf(ctx context.Context, id int64, next domain.AppointmentStatus, expected []domain.AppointmentStatus) error
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
