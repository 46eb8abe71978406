package confirmations

import (
	"context"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

// TokenRepository is the persistence surface the service needs.
type TokenRepository interface {
	Create(ctx context.Context, t *domain.ConfirmationToken) (*domain.ConfirmationToken, error)
	GetByValue(ctx context.Context, value string, typ domain.TokenType) (*domain.ConfirmationToken, error)
	MarkUsed(ctx context.Context, id int64, now time.Time) error
	RevokeUnusedByAppointment(ctx context.Context, appointmentID int64, typ domain.TokenType, now time.Time) error
}

// TimeProvider supplies the current time, swappable in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
