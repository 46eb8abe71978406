package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	serviceRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/service"
	"github.com/citaflow/CITA-SchedulingService/pkg/timeutil"
)

// UseCase books an appointment: it resolves the service duration, validates
// the slot against the employee's weekly schedule and vacations, guards
// against an identical concurrent submission, persists the booking as
// pending, and issues the confirmation token for the client's link.
type UseCase struct {
	appointments AppointmentRepository
	schedules    ScheduleRepository
	services     ServiceRepository
	tokens       TokenIssuer
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates a create-appointment use case.
func NewUseCase(
	appointments AppointmentRepository,
	schedules ScheduleRepository,
	services ServiceRepository,
	tokens TokenIssuer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		schedules:    schedules,
		services:     services,
		tokens:       tokens,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute runs the booking pipeline. On success the appointment is pending
// and the response carries the confirmation token. When the appointment was
// created but the token could not be issued, Execute returns the response
// without a token together with ErrTokenIssueFailed; the booking is kept.
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	u.logger.Info("Execute: booking employee=%d client=%d service=%d at %s %s",
		req.EmployeeID, req.ClientID, req.ServiceID, req.Date, req.StartTime)

	duration, err := u.services.GetDurationMinutes(ctx, req.Auth.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		u.logger.Error("Execute: failed to resolve service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: resolve service duration: %v", ErrInternal, err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: service %d has non-positive duration", ErrInvalidInput, req.ServiceID)
	}

	// The whole slot must fit into the calendar day the client asked for.
	if _, err := req.StartTime.AddMinutes(duration); err != nil {
		return nil, ErrEndsNextDay
	}

	startAt, err := timeutil.ToAbsoluteInstant(req.Date, req.StartTime, req.TimezoneOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endAt := startAt.Add(time.Duration(duration) * time.Minute)

	localDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	key := domain.DuplicateKey{
		CompanyID:  req.Auth.CompanyID,
		EmployeeID: req.EmployeeID,
		ClientID:   req.ClientID,
		ServiceID:  req.ServiceID,
		StartAt:    startAt,
	}

	// Cheap pre-check before touching the schedule; the authoritative check
	// runs again inside the transaction with the rows locked.
	if _, err := u.appointments.FindDuplicate(ctx, key); err == nil {
		u.logger.Warn("Execute: duplicate booking for employee=%d client=%d at %s", req.EmployeeID, req.ClientID, startAt)
		return nil, ErrDuplicateAppointment
	} else if !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
		u.logger.Error("Execute: duplicate pre-check failed: %v", err)
		return nil, fmt.Errorf("%w: duplicate pre-check: %v", ErrInternal, err)
	}

	entries, vacations, err := u.fetchScheduleData(ctx, req.EmployeeID, domain.ISOWeekday(localDate))
	if err != nil {
		u.logger.Error("Execute: failed to load schedule data for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: load schedule data: %v", ErrInternal, err)
	}

	slotStart, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime %q", ErrInvalidInput, req.StartTime)
	}
	slotEnd := slotStart + duration

	if err := checkWorkingHours(entries, slotStart, slotEnd); err != nil {
		u.logger.Warn("Execute: slot %s (+%dmin) rejected for employee=%d: %v", req.StartTime, duration, req.EmployeeID, err)
		return nil, err
	}
	if err := checkVacations(vacations, localDate); err != nil {
		u.logger.Warn("Execute: employee=%d on vacation on %s", req.EmployeeID, req.Date)
		return nil, err
	}

	appt := &domain.Appointment{
		CompanyID:   req.Auth.CompanyID,
		EmployeeID:  req.EmployeeID,
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      domain.StatusPending,
	}

	var created *domain.Appointment
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := u.appointments.FindDuplicate(txCtx, key); err == nil {
			return ErrDuplicateAppointment
		} else if !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: duplicate check: %v", ErrInternal, err)
		}

		inserted, err := u.appointments.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: create appointment: %v", ErrInternal, err)
		}
		created = inserted
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateAppointment) {
			return nil, ErrDuplicateAppointment
		}
		u.logger.Error("Execute: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	u.logger.Info("Execute: appointment id=%d created pending for employee=%d", created.ID, created.EmployeeID)

	// Token issuance is deliberately outside the transaction: a booking that
	// exists without a link beats a link to a booking that was rolled back.
	token, err := u.tokens.IssueForAppointment(ctx, created, domain.TokenTypeConfirm)
	if err != nil {
		u.logger.Error("Execute: appointment id=%d created but token issuance failed: %v", created.ID, err)
		return &Response{Appointment: created}, ErrTokenIssueFailed
	}

	return &Response{
		Appointment: created,
		Token:       token.Token,
		TokenType:   token.Type,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

// fetchScheduleData loads weekday entries and vacations concurrently.
// This must not run inside a transaction: *sql.Tx does not allow parallel
// queries, plain pool connections do.
func (u *UseCase) fetchScheduleData(ctx context.Context, employeeID int64, weekday int) ([]*domain.WeeklyScheduleEntry, []*domain.VacationRange, error) {
	var (
		wg          sync.WaitGroup
		entries     []*domain.WeeklyScheduleEntry
		vacations   []*domain.VacationRange
		entriesErr  error
		vacationErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, entriesErr = u.schedules.GetWeekdayEntries(ctx, employeeID, weekday)
	}()
	go func() {
		defer wg.Done()
		vacations, vacationErr = u.schedules.GetVacations(ctx, employeeID)
	}()
	wg.Wait()

	if entriesErr != nil {
		return nil, nil, entriesErr
	}
	if vacationErr != nil {
		return nil, nil, vacationErr
	}
	return entries, vacations, nil
}
