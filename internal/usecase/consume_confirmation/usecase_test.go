package consume_confirmation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	wlRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/waitlist"
	"github.com/citaflow/CITA-SchedulingService/internal/integrations/notifier"
	"github.com/citaflow/CITA-SchedulingService/internal/service/confirmations"
	"github.com/citaflow/CITA-SchedulingService/pkg/ptr"
)

type fakeTokenService struct {
	token      *domain.ConfirmationToken
	resolveErr error
	consumeErr error
	consumed   int
}

func (f *fakeTokenService) Resolve(context.Context, string, domain.TokenType) (*domain.ConfirmationToken, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.token, nil
}

func (f *fakeTokenService) Consume(context.Context, *domain.ConfirmationToken) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed++
	return nil
}

type fakeTokenIssuer struct {
	err            error
	calls          int
	waitlistErr    error
	waitlistIssued []int64
}

func (f *fakeTokenIssuer) IssueForAppointment(_ context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	id := appt.ID
	return &domain.ConfirmationToken{Token: "fresh-tok", Type: typ, AppointmentID: &id}, nil
}

func (f *fakeTokenIssuer) IssueForWaitlist(_ context.Context, entry *domain.WaitlistEntry, _ time.Time) (*domain.ConfirmationToken, error) {
	if f.waitlistErr != nil {
		return nil, f.waitlistErr
	}
	f.waitlistIssued = append(f.waitlistIssued, entry.ID)
	id := entry.ID
	return &domain.ConfirmationToken{Token: fmt.Sprintf("wl-tok-%d", entry.ID), Type: domain.TokenTypeWaitlist, WaitlistEntryID: &id}, nil
}

type fakeAppointmentRepo struct {
	appt *domain.Appointment

	updateErr    error
	updateCalls  int
	updatedTo    domain.AppointmentStatus
	expectedWas  []domain.AppointmentStatus
	reassignErr  error
	reassignedTo int64
	siblings     int64
	siblingCalls int
	siblingKey   []int64
	siblingStart time.Time
}

func (f *fakeAppointmentRepo) GetByID(context.Context, int64) (*domain.Appointment, error) {
	if f.appt == nil {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) UpdateStatusIf(_ context.Context, _ int64, next domain.AppointmentStatus, expected []domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls++
	f.updatedTo = next
	f.expectedWas = expected
	return nil
}

func (f *fakeAppointmentRepo) Reassign(_ context.Context, _ int64, clientID int64) error {
	if f.reassignErr != nil {
		return f.reassignErr
	}
	f.reassignedTo = clientID
	return nil
}

func (f *fakeAppointmentRepo) DeleteSiblings(_ context.Context, companyID, employeeID, serviceID int64, startAt time.Time, excludeID int64) (int64, error) {
	f.siblingCalls++
	f.siblingKey = []int64{companyID, employeeID, serviceID, excludeID}
	f.siblingStart = startAt
	return f.siblings, nil
}

type fakeWaitlistRepo struct {
	entry   *domain.WaitlistEntry
	entries []*domain.WaitlistEntry
	deleted []int64
}

func (f *fakeWaitlistRepo) GetByID(context.Context, int64) (*domain.WaitlistEntry, error) {
	if f.entry == nil {
		return nil, wlRepo.ErrEntryNotFound
	}
	return f.entry, nil
}

func (f *fakeWaitlistRepo) ListByAppointment(context.Context, int64) ([]*domain.WaitlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWaitlistRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNotifier struct {
	events   []string
	payloads []notifier.Payload
}

func (f *fakeNotifier) Notify(_ context.Context, event string, payload notifier.Payload) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmToken(appointmentID int64) *domain.ConfirmationToken {
	return &domain.ConfirmationToken{
		ID:            1,
		Token:         "tok-abc",
		Type:          domain.TokenTypeConfirm,
		AppointmentID: &appointmentID,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         11,
		CompanyID:  1,
		EmployeeID: 5,
		ClientID:   9,
		ServiceID:  3,
		StartAt:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC),
		Status:     domain.StatusPending,
	}
}

func newTestUseCase(tokens *fakeTokenService, issuer *fakeTokenIssuer, appts *fakeAppointmentRepo, wl *fakeWaitlistRepo, n *fakeNotifier) *UseCase {
	return NewUseCase(tokens, issuer, appts, wl, n, fakeTxManager{}, nopLogger{})
}

func TestAct_ConfirmTransitionsAndCleansSiblings(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment(), siblings: 2}
	tokens := &fakeTokenService{token: confirmToken(11)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeConfirm,
		Action:     domain.ActionConfirm,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, appts.updatedTo)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusPending}, appts.expectedWas)
	assert.Equal(t, 1, appts.siblingCalls)
	assert.Equal(t, int64(2), resp.RemovedSiblings)
	assert.Equal(t, 1, tokens.consumed)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)

	// The cleanup key is company, employee, service and start instant. The
	// client is deliberately not part of it: a different client's pending
	// booking for the same slot is swept too.
	assert.Equal(t, []int64{1, 5, 3, 11}, appts.siblingKey)
	assert.True(t, appts.siblingStart.Equal(time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)))
}

func TestAct_RejectDoesNotCleanSiblings(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment()}
	tokens := &fakeTokenService{token: confirmToken(11)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeConfirm,
		Action:     domain.ActionReject,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, appts.updatedTo)
	assert.Zero(t, appts.siblingCalls)
	assert.Equal(t, domain.StatusRejected, resp.Appointment.Status)
}

func TestAct_UsedTokenRejected(t *testing.T) {
	tokens := &fakeTokenService{resolveErr: confirmations.ErrTokenUsed}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, &fakeAppointmentRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeConfirm,
		Action:     domain.ActionConfirm,
	})
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestAct_CompletedAppointmentIsLocked(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCompleted
	appts := &fakeAppointmentRepo{appt: appt}
	tokens := &fakeTokenService{token: confirmToken(11)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	for _, action := range []domain.ConfirmationAction{domain.ActionConfirm, domain.ActionReject} {
		_, err := uc.Act(context.Background(), &ActRequest{
			TokenValue: "tok-abc",
			Type:       domain.TokenTypeConfirm,
			Action:     action,
		})
		assert.ErrorIs(t, err, ErrAppointmentCompleted)
	}
	// The token survives the refusal.
	assert.Zero(t, tokens.consumed)
}

func TestAct_ConsumeRaceSurfacesUsed(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment()}
	tokens := &fakeTokenService{token: confirmToken(11), consumeErr: confirmations.ErrTokenUsed}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeConfirm,
		Action:     domain.ActionConfirm,
	})
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestAct_LostTransitionRace(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment(), updateErr: apptRepo.ErrNotAvailable}
	tokens := &fakeTokenService{token: confirmToken(11)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeConfirm,
		Action:     domain.ActionConfirm,
	})
	assert.ErrorIs(t, err, ErrNoLongerAvailable)
	assert.Zero(t, tokens.consumed)
}

func TestAct_CancellationNotifiesWaitlistedClients(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	appts := &fakeAppointmentRepo{appt: appt}

	phone := ptr.Ptr("+34600111222")
	wl := &fakeWaitlistRepo{
		entries: []*domain.WaitlistEntry{
			{ID: 21, ClientID: 100, ClientPhone: phone},
			{ID: 22, ClientID: 101},
		},
	}

	token := confirmToken(11)
	token.Type = domain.TokenTypeDelete
	tokens := &fakeTokenService{token: token}
	sink := &fakeNotifier{}
	issuer := &fakeTokenIssuer{}
	uc := newTestUseCase(tokens, issuer, appts, wl, sink)

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeDelete,
		Action:     domain.ActionConfirm,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, appts.updatedTo)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, appts.expectedWas)
	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)

	require.Len(t, sink.events, 1)
	assert.Equal(t, notifier.EventAppointmentCancelled, sink.events[0])
	require.Len(t, sink.payloads[0].WaitlistedClients, 2)
	assert.Equal(t, int64(100), sink.payloads[0].WaitlistedClients[0].ClientID)
	assert.Equal(t, phone, sink.payloads[0].WaitlistedClients[0].Phone)

	// Each waiting client gets a claim link for the freed slot.
	assert.Equal(t, []int64{21, 22}, issuer.waitlistIssued)
	assert.Equal(t, "wl-tok-21", sink.payloads[0].WaitlistedClients[0].Token)
	assert.Equal(t, "wl-tok-22", sink.payloads[0].WaitlistedClients[1].Token)

	// Entries stay: the freed slot can still be reassigned.
	assert.Empty(t, wl.deleted)
}

func TestAct_CancellationNotifiesWithoutLinksWhenIssuanceFails(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	appts := &fakeAppointmentRepo{appt: appt}
	wl := &fakeWaitlistRepo{
		entries: []*domain.WaitlistEntry{{ID: 21, ClientID: 100}},
	}

	token := confirmToken(11)
	token.Type = domain.TokenTypeDelete
	tokens := &fakeTokenService{token: token}
	sink := &fakeNotifier{}
	issuer := &fakeTokenIssuer{waitlistErr: errors.New("token store down")}
	uc := newTestUseCase(tokens, issuer, appts, wl, sink)

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeDelete,
		Action:     domain.ActionConfirm,
	})
	require.NoError(t, err)

	// The client is still told about the freed slot, just without a link.
	require.Len(t, sink.events, 1)
	require.Len(t, sink.payloads[0].WaitlistedClients, 1)
	assert.Equal(t, int64(100), sink.payloads[0].WaitlistedClients[0].ClientID)
	assert.Empty(t, sink.payloads[0].WaitlistedClients[0].Token)
}

func TestAct_CancellationRejectedKeepsAppointment(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	appts := &fakeAppointmentRepo{appt: appt}

	token := confirmToken(11)
	token.Type = domain.TokenTypeDelete
	tokens := &fakeTokenService{token: token}
	sink := &fakeNotifier{}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, sink)

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeDelete,
		Action:     domain.ActionReject,
	})
	require.NoError(t, err)

	assert.Zero(t, appts.updateCalls)
	assert.Equal(t, 1, tokens.consumed)
	assert.Empty(t, sink.events)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
}

func TestAct_ModificationConfirmNotifies(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment()}
	token := confirmToken(11)
	token.Type = domain.TokenTypeChange
	tokens := &fakeTokenService{token: token}
	sink := &fakeNotifier{}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, sink)

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-abc",
		Type:       domain.TokenTypeChange,
		Action:     domain.ActionConfirm,
	})
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	assert.Equal(t, notifier.EventAppointmentModified, sink.events[0])
}

func waitlistToken(entryID int64) *domain.ConfirmationToken {
	return &domain.ConfirmationToken{
		ID:              2,
		Token:           "tok-wl",
		Type:            domain.TokenTypeWaitlist,
		WaitlistEntryID: &entryID,
		ExpiresAt:       time.Now().Add(time.Hour),
	}
}

func TestAct_WaitlistConfirmReassigns(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	appts := &fakeAppointmentRepo{appt: appt}
	wl := &fakeWaitlistRepo{entry: &domain.WaitlistEntry{ID: 21, CompanyID: 1, AppointmentID: 11, ClientID: 100}}
	tokens := &fakeTokenService{token: waitlistToken(21)}
	issuer := &fakeTokenIssuer{}
	uc := newTestUseCase(tokens, issuer, appts, wl, &fakeNotifier{})

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-wl",
		Type:       domain.TokenTypeWaitlist,
		Action:     domain.ActionConfirm,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), appts.reassignedTo)
	assert.Equal(t, []int64{21}, wl.deleted)
	assert.Equal(t, 1, tokens.consumed)
	assert.Equal(t, "fresh-tok", resp.NewToken)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, int64(100), resp.Appointment.ClientID)
}

func TestAct_WaitlistConfirmLostRace(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	appts := &fakeAppointmentRepo{appt: appt, reassignErr: apptRepo.ErrNotAvailable}
	wl := &fakeWaitlistRepo{entry: &domain.WaitlistEntry{ID: 21, CompanyID: 1, AppointmentID: 11, ClientID: 100}}
	tokens := &fakeTokenService{token: waitlistToken(21)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, wl, &fakeNotifier{})

	_, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-wl",
		Type:       domain.TokenTypeWaitlist,
		Action:     domain.ActionConfirm,
	})
	assert.ErrorIs(t, err, ErrNoLongerAvailable)
	assert.Zero(t, tokens.consumed)
}

func TestAct_WaitlistConfirmTokenIssueFailure(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	appts := &fakeAppointmentRepo{appt: appt}
	wl := &fakeWaitlistRepo{entry: &domain.WaitlistEntry{ID: 21, CompanyID: 1, AppointmentID: 11, ClientID: 100}}
	tokens := &fakeTokenService{token: waitlistToken(21)}
	issuer := &fakeTokenIssuer{err: errors.New("token store down")}
	uc := newTestUseCase(tokens, issuer, appts, wl, &fakeNotifier{})

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-wl",
		Type:       domain.TokenTypeWaitlist,
		Action:     domain.ActionConfirm,
	})
	assert.ErrorIs(t, err, ErrTokenIssueFailed)

	// The reassignment is kept.
	require.NotNil(t, resp)
	assert.Equal(t, int64(100), appts.reassignedTo)
	assert.Empty(t, resp.NewToken)
}

func TestAct_WaitlistRejectWithdrawsEntry(t *testing.T) {
	wl := &fakeWaitlistRepo{entry: &domain.WaitlistEntry{ID: 21, CompanyID: 1, AppointmentID: 11, ClientID: 100}}
	tokens := &fakeTokenService{token: waitlistToken(21)}
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, wl, &fakeNotifier{})

	resp, err := uc.Act(context.Background(), &ActRequest{
		TokenValue: "tok-wl",
		Type:       domain.TokenTypeWaitlist,
		Action:     domain.ActionReject,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{21}, wl.deleted)
	assert.Equal(t, 1, tokens.consumed)
	assert.Equal(t, domain.ActionReject, resp.Action)
}

func TestResolve_ExpiredToken(t *testing.T) {
	tokens := &fakeTokenService{resolveErr: confirmations.ErrTokenExpired}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, &fakeAppointmentRepo{}, &fakeWaitlistRepo{}, &fakeNotifier{})

	_, err := uc.Resolve(context.Background(), &ResolveRequest{TokenValue: "tok", Type: domain.TokenTypeConfirm})
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResolve_ReturnsAppointmentSnapshot(t *testing.T) {
	appts := &fakeAppointmentRepo{appt: pendingAppointment()}
	tokens := &fakeTokenService{token: confirmToken(11)}
	uc := newTestUseCase(tokens, &fakeTokenIssuer{}, appts, &fakeWaitlistRepo{}, &fakeNotifier{})

	resp, err := uc.Resolve(context.Background(), &ResolveRequest{TokenValue: "tok-abc", Type: domain.TokenTypeConfirm})
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, int64(11), resp.Appointment.ID)
	assert.Equal(t, int64(1), resp.Token.ID)
}
