package create_appointment

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// AppointmentRepository is the appointment persistence surface of the use case.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	FindDuplicate(ctx context.Context, key domain.DuplicateKey) (*domain.Appointment, error)
}

// ScheduleRepository reads working hours and vacations.
type ScheduleRepository interface {
	GetWeekdayEntries(ctx context.Context, employeeID int64, weekday int) ([]*domain.WeeklyScheduleEntry, error)
	GetVacations(ctx context.Context, employeeID int64) ([]*domain.VacationRange, error)
}

// ServiceRepository resolves service durations from the tenant catalog.
type ServiceRepository interface {
	GetDurationMinutes(ctx context.Context, companyID, serviceID int64) (int, error)
}

// TokenIssuer issues confirmation tokens for created appointments.
type TokenIssuer interface {
	IssueForAppointment(ctx context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error)
}

// TransactionManager runs the duplicate-guarded insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
