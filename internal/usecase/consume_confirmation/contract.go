package consume_confirmation

import (
	"context"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/internal/integrations/notifier"
)

// TokenService resolves and consumes confirmation tokens.
type TokenService interface {
	Resolve(ctx context.Context, value string, typ domain.TokenType) (*domain.ConfirmationToken, error)
	Consume(ctx context.Context, t *domain.ConfirmationToken) error
}

// TokenIssuer mints the fresh confirmation token a reassigned appointment
// needs, and the waitlist tokens offered to waiting clients when a slot
// frees up.
type TokenIssuer interface {
	IssueForAppointment(ctx context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error)
	IssueForWaitlist(ctx context.Context, entry *domain.WaitlistEntry, appointmentStart time.Time) (*domain.ConfirmationToken, error)
}

// AppointmentRepository is the appointment surface of the use case.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatusIf(ctx context.Context, id int64, next domain.AppointmentStatus, expected []domain.AppointmentStatus) error
	Reassign(ctx context.Context, id int64, clientID int64) error
	DeleteSiblings(ctx context.Context, companyID, employeeID, serviceID int64, startAt time.Time, excludeID int64) (int64, error)
}

// WaitlistRepository reads and removes waitlist entries.
type WaitlistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier delivers fire-and-forget events to the webhook sink.
type Notifier interface {
	Notify(ctx context.Context, event string, payload notifier.Payload)
}

// TransactionManager wraps the transition-then-consume write sequence.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
