package confirmations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	tokenRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/token"
)

// Service issues, resolves and consumes confirmation tokens.
type Service struct {
	tokenRepo    TokenRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a confirmation token service.
func NewService(tokenRepo TokenRepository, logger Logger) *Service {
	return &Service{
		tokenRepo:    tokenRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// IssueForAppointment creates a fresh token bound to the appointment.
// Any unused token of the same type for this appointment is revoked in the
// same operation so stale links in old emails stop working. The link stays
// valid until the appointment would begin.
func (s *Service) IssueForAppointment(ctx context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error) {
	now := s.timeProvider.Now()

	if err := s.tokenRepo.RevokeUnusedByAppointment(ctx, appt.ID, typ, now); err != nil {
		s.logger.Error("IssueForAppointment: failed to revoke stale tokens for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: revoke stale tokens: %v", ErrInternal, err)
	}

	t := &domain.ConfirmationToken{
		Token:         uuid.NewString(),
		Type:          typ,
		AppointmentID: &appt.ID,
		ExpiresAt:     appt.StartAt,
	}

	created, err := s.tokenRepo.Create(ctx, t)
	if err != nil {
		s.logger.Error("IssueForAppointment: failed to create token for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: create token: %v", ErrInternal, err)
	}

	s.logger.Info("IssueForAppointment: issued %s token id=%d for appointment id=%d", typ, created.ID, appt.ID)
	return created, nil
}

// IssueForWaitlist creates a token bound to a waitlist entry. Expiry is the
// bound appointment's start; the 24 hour fallback applies only when no start
// instant is available, so a link for a slot that already began is born
// expired rather than extended.
func (s *Service) IssueForWaitlist(ctx context.Context, entry *domain.WaitlistEntry, appointmentStart time.Time) (*domain.ConfirmationToken, error) {
	expiresAt := appointmentStart
	if expiresAt.IsZero() {
		expiresAt = s.timeProvider.Now().Add(domain.DefaultWaitlistTokenTTL)
	}

	t := &domain.ConfirmationToken{
		Token:           uuid.NewString(),
		Type:            domain.TokenTypeWaitlist,
		WaitlistEntryID: &entry.ID,
		ExpiresAt:       expiresAt,
	}

	created, err := s.tokenRepo.Create(ctx, t)
	if err != nil {
		s.logger.Error("IssueForWaitlist: failed to create token for entry id=%d: %v", entry.ID, err)
		return nil, fmt.Errorf("%w: create token: %v", ErrInternal, err)
	}

	s.logger.Info("IssueForWaitlist: issued waitlist token id=%d for entry id=%d", created.ID, entry.ID)
	return created, nil
}

// Resolve fetches and validates a token without consuming it.
func (s *Service) Resolve(ctx context.Context, value string, typ domain.TokenType) (*domain.ConfirmationToken, error) {
	t, err := s.tokenRepo.GetByValue(ctx, value, typ)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		s.logger.Error("Resolve: repository error for token type=%s: %v", typ, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	if t.IsUsed() {
		return nil, ErrTokenUsed
	}
	if t.IsExpired(s.timeProvider.Now()) {
		return nil, ErrTokenExpired
	}

	return t, nil
}

// Consume marks the token as used with a guard on it still being unused.
// Must be the last write of the consuming operation: a failed state
// transition never leaves a spent token behind, and of two concurrent
// consumers exactly one passes while the other gets ErrTokenUsed.
func (s *Service) Consume(ctx context.Context, t *domain.ConfirmationToken) error {
	err := s.tokenRepo.MarkUsed(ctx, t.ID, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, tokenRepo.ErrAlreadyUsed) {
			s.logger.Warn("Consume: lost consumption race for token id=%d", t.ID)
			return ErrTokenUsed
		}
		s.logger.Error("Consume: repository error for token id=%d: %v", t.ID, err)
		return fmt.Errorf("%w: Consume - repository error: %v", ErrInternal, err)
	}
	return nil
}
