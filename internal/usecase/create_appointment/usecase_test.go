package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	serviceRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/service"
	"github.com/citaflow/CITA-SchedulingService/pkg/ptr"
	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	duplicate   *domain.Appointment
	createErr   error
	createCalls int
	lastCreated *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createCalls++
	appt.ID = 42
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.lastCreated = appt
	return appt, nil
}

func (f *fakeAppointmentRepo) FindDuplicate(context.Context, domain.DuplicateKey) (*domain.Appointment, error) {
	if f.duplicate != nil {
		return f.duplicate, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

type fakeScheduleRepo struct {
	entries   []*domain.WeeklyScheduleEntry
	vacations []*domain.VacationRange
}

func (f *fakeScheduleRepo) GetWeekdayEntries(context.Context, int64, int) ([]*domain.WeeklyScheduleEntry, error) {
	return f.entries, nil
}

func (f *fakeScheduleRepo) GetVacations(context.Context, int64) ([]*domain.VacationRange, error) {
	return f.vacations, nil
}

type fakeServiceRepo struct {
	duration int
	err      error
}

func (f *fakeServiceRepo) GetDurationMinutes(context.Context, int64, int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.duration, nil
}

type fakeTokenIssuer struct {
	err   error
	calls int
}

func (f *fakeTokenIssuer) IssueForAppointment(_ context.Context, appt *domain.Appointment, typ domain.TokenType) (*domain.ConfirmationToken, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	id := appt.ID
	return &domain.ConfirmationToken{
		ID:            1,
		Token:         "tok-abc",
		Type:          typ,
		AppointmentID: &id,
		ExpiresAt:     appt.StartAt,
	}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mondaySchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		entries: []*domain.WeeklyScheduleEntry{
			{
				EntryTime:  "09:00",
				ExitTime:   "17:00",
				BreakStart: ptr.Ptr(types.TimeString("13:00")),
				BreakEnd:   ptr.Ptr(types.TimeString("14:00")),
			},
		},
	}
}

func validRequest() *Request {
	return &Request{
		EmployeeID:     5,
		ClientID:       9,
		ServiceID:      3,
		Date:           "2026-03-16", // a Monday
		StartTime:      "10:00",
		TimezoneOffset: 60,
		Auth:           domain.AuthContext{CompanyID: 1, EmployeeID: 2, Role: domain.RoleBoss},
	}
}

func newTestUseCase(appts *fakeAppointmentRepo, sched *fakeScheduleRepo, svc *fakeServiceRepo, tokens *fakeTokenIssuer) *UseCase {
	return NewUseCase(appts, sched, svc, tokens, fakeTxManager{}, nopLogger{})
}

func TestExecute_CreatesPendingWithToken(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	tokens := &fakeTokenIssuer{}
	uc := newTestUseCase(appts, mondaySchedule(), &fakeServiceRepo{duration: 30}, tokens)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.Appointment.ID)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, domain.TokenTypeConfirm, resp.TokenType)

	// 10:00 local at UTC+1 is 09:00 UTC; end is start plus duration.
	wantStart := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	assert.True(t, resp.Appointment.StartAt.Equal(wantStart))
	assert.True(t, resp.Appointment.EndAt.Equal(wantStart.Add(30*time.Minute)))
}

func TestExecute_DuplicateRejected(t *testing.T) {
	appts := &fakeAppointmentRepo{
		duplicate: &domain.Appointment{ID: 7, Status: domain.StatusPending},
	}
	uc := newTestUseCase(appts, mondaySchedule(), &fakeServiceRepo{duration: 30}, &fakeTokenIssuer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateAppointment)
	assert.Zero(t, appts.createCalls)
}

// Only the exact start instant is guarded: a booking whose time range merely
// overlaps another appointment with a different start is accepted. Changing
// this behavior is a deliberate decision, not a bug fix.
func TestExecute_AllowsOverlappingDistinctAppointments(t *testing.T) {
	// The repository reports no duplicate because the existing appointment
	// starts 09:45, not 10:00, even though 10:00-10:30 overlaps it.
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(appts, mondaySchedule(), &fakeServiceRepo{duration: 30}, &fakeTokenIssuer{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
}

func TestExecute_BreakConflictScenario(t *testing.T) {
	// Monday 09:00-17:00 with break 13:00-14:00, 30 minute service.
	uc := newTestUseCase(&fakeAppointmentRepo{}, mondaySchedule(), &fakeServiceRepo{duration: 30}, &fakeTokenIssuer{})

	req := validRequest()
	req.StartTime = "13:15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBreakConflict)

	// 12:30 ends exactly at 13:00: touching the break boundary is fine.
	req = validRequest()
	req.StartTime = "12:30"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_EndsNextDay(t *testing.T) {
	// 22:00 + 540min = 07:00 next day.
	sched := &fakeScheduleRepo{
		entries: []*domain.WeeklyScheduleEntry{{EntryTime: "00:00", ExitTime: "23:59"}},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, sched, &fakeServiceRepo{duration: 540}, &fakeTokenIssuer{})

	req := validRequest()
	req.StartTime = "22:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEndsNextDay)
}

func TestExecute_EmployeeOnVacation(t *testing.T) {
	sched := mondaySchedule()
	sched.vacations = []*domain.VacationRange{
		{
			StartDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, sched, &fakeServiceRepo{duration: 30}, &fakeTokenIssuer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeOnVacation)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, mondaySchedule(), &fakeServiceRepo{err: serviceRepo.ErrServiceNotFound}, &fakeTokenIssuer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_TokenIssueFailureKeepsAppointment(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	tokens := &fakeTokenIssuer{err: errors.New("token store down")}
	uc := newTestUseCase(appts, mondaySchedule(), &fakeServiceRepo{duration: 30}, tokens)

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTokenIssueFailed)

	// The booking is kept; only the token is missing.
	require.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.Appointment.ID)
	assert.Empty(t, resp.Token)
	assert.Equal(t, 1, appts.createCalls)
}
