package confirmations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	tokenRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/token"
	"github.com/citaflow/CITA-SchedulingService/pkg/ptr"
)

type fakeTokenRepo struct {
	ops       []string
	created   *domain.ConfirmationToken
	stored    *domain.ConfirmationToken
	revokeErr error
	getErr    error
	markErr   error
}

func (f *fakeTokenRepo) Create(_ context.Context, t *domain.ConfirmationToken) (*domain.ConfirmationToken, error) {
	f.ops = append(f.ops, "create")
	t.ID = 1
	f.created = t
	return t, nil
}

func (f *fakeTokenRepo) GetByValue(context.Context, string, domain.TokenType) (*domain.ConfirmationToken, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeTokenRepo) MarkUsed(context.Context, int64, time.Time) error {
	f.ops = append(f.ops, "markUsed")
	return f.markErr
}

func (f *fakeTokenRepo) RevokeUnusedByAppointment(context.Context, int64, domain.TokenType, time.Time) error {
	f.ops = append(f.ops, "revoke")
	return f.revokeErr
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeTokenRepo) *Service {
	s := NewService(repo, nopLogger{})
	s.timeProvider = fixedClock{now: testNow}
	return s
}

func TestIssueForAppointment_RevokesThenCreates(t *testing.T) {
	repo := &fakeTokenRepo{}
	s := newTestService(repo)

	appt := &domain.Appointment{
		ID:      11,
		StartAt: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
	}

	created, err := s.IssueForAppointment(context.Background(), appt, domain.TokenTypeConfirm)
	require.NoError(t, err)

	// Stale links die before the fresh one exists.
	assert.Equal(t, []string{"revoke", "create"}, repo.ops)

	assert.NotEmpty(t, created.Token)
	assert.Equal(t, domain.TokenTypeConfirm, created.Type)
	require.NotNil(t, created.AppointmentID)
	assert.Equal(t, int64(11), *created.AppointmentID)

	// The link lives exactly until the appointment would begin.
	assert.True(t, created.ExpiresAt.Equal(appt.StartAt))
}

func TestIssueForAppointment_RevokeFailureBlocksCreate(t *testing.T) {
	repo := &fakeTokenRepo{revokeErr: ErrInternal}
	s := newTestService(repo)

	_, err := s.IssueForAppointment(context.Background(), &domain.Appointment{ID: 11}, domain.TokenTypeConfirm)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotContains(t, repo.ops, "create")
}

func TestIssueForWaitlist_Expiry(t *testing.T) {
	futureStart := testNow.Add(48 * time.Hour)
	pastStart := testNow.Add(-time.Hour)

	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"appointment start wins", futureStart, futureStart},
		{"past start is kept, not extended", pastStart, pastStart},
		{"no start falls back to 24h", time.Time{}, testNow.Add(domain.DefaultWaitlistTokenTTL)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTokenRepo{}
			s := newTestService(repo)

			created, err := s.IssueForWaitlist(context.Background(), &domain.WaitlistEntry{ID: 21}, tt.start)
			require.NoError(t, err)

			assert.True(t, created.ExpiresAt.Equal(tt.want))
			assert.Equal(t, domain.TokenTypeWaitlist, created.Type)
			require.NotNil(t, created.WaitlistEntryID)
			assert.Equal(t, int64(21), *created.WaitlistEntryID)
		})
	}
}

func TestResolve(t *testing.T) {
	valid := &domain.ConfirmationToken{
		ID:        1,
		Token:     "tok-abc",
		Type:      domain.TokenTypeConfirm,
		ExpiresAt: testNow.Add(time.Hour),
	}
	used := &domain.ConfirmationToken{
		ID:        2,
		Token:     "tok-used",
		Type:      domain.TokenTypeConfirm,
		ExpiresAt: testNow.Add(time.Hour),
		UsedAt:    ptr.Ptr(testNow.Add(-time.Minute)),
	}
	expired := &domain.ConfirmationToken{
		ID:        3,
		Token:     "tok-old",
		Type:      domain.TokenTypeConfirm,
		ExpiresAt: testNow.Add(-time.Minute),
	}

	tests := []struct {
		name    string
		repo    *fakeTokenRepo
		wantErr error
	}{
		{"valid token passes", &fakeTokenRepo{stored: valid}, nil},
		{"unknown token", &fakeTokenRepo{getErr: tokenRepo.ErrTokenNotFound}, ErrTokenNotFound},
		{"used token", &fakeTokenRepo{stored: used}, ErrTokenUsed},
		{"expired token", &fakeTokenRepo{stored: expired}, ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(tt.repo)

			got, err := s.Resolve(context.Background(), "tok", domain.TokenTypeConfirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
		})
	}
}

func TestConsume_LostRace(t *testing.T) {
	repo := &fakeTokenRepo{markErr: tokenRepo.ErrAlreadyUsed}
	s := newTestService(repo)

	err := s.Consume(context.Background(), &domain.ConfirmationToken{ID: 1})
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestConsume_OK(t *testing.T) {
	repo := &fakeTokenRepo{}
	s := newTestService(repo)

	require.NoError(t, s.Consume(context.Background(), &domain.ConfirmationToken{ID: 1}))
	assert.Equal(t, []string{"markUsed"}, repo.ops)
}
