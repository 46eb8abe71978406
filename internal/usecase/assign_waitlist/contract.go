package assign_waitlist

import (
	"context"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// AppointmentRepository is the appointment surface of the use case.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Reassign(ctx context.Context, id int64, clientID int64) error
}

// WaitlistRepository reads and removes waitlist entries.
type WaitlistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// TokenIssuer mints the confirmation token for the reassigned appointment.
type TokenIssuer interface {
	IssueForAppointment(ctx context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error)
}

// TransactionManager wraps the reassign-and-fulfill write sequence.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
