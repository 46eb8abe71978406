package assign_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	wlRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/waitlist"
)

// UseCase moves a waitlisted client into a freed appointment slot. The
// reassignment is conditioned on the appointment still being in a freed
// state, so of two racing assignments exactly one wins and the other is told
// the slot is no longer available.
type UseCase struct {
	appointments AppointmentRepository
	waitlist     WaitlistRepository
	tokens       TokenIssuer
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates an assign-waitlist use case.
func NewUseCase(
	appointments AppointmentRepository,
	waitlist WaitlistRepository,
	tokens TokenIssuer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		waitlist:     waitlist,
		tokens:       tokens,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute performs the assignment. On success the appointment belongs to the
// waitlisted client in pending status, the entry is deleted, and a fresh
// confirmation token is returned. If the token could not be issued after the
// reassignment, Execute returns the response without a token together with
// ErrTokenIssueFailed; the reassignment is not rolled back.
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	u.logger.Info("Execute: assigning waitlist entry id=%d", req.EntryID)

	entry, err := u.waitlist.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, wlRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		u.logger.Error("Execute: failed to load entry id=%d: %v", req.EntryID, err)
		return nil, fmt.Errorf("%w: load waitlist entry: %v", ErrInternal, err)
	}
	if entry.CompanyID != req.Auth.CompanyID {
		u.logger.Warn("Execute: entry id=%d outside tenant company=%d", req.EntryID, req.Auth.CompanyID)
		return nil, ErrEntryNotFound
	}

	appt, err := u.appointments.GetByID(ctx, entry.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.logger.Error("Execute: failed to load appointment id=%d: %v", entry.AppointmentID, err)
		return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
	}
	if appt.CompanyID != req.Auth.CompanyID {
		return nil, ErrAppointmentNotFound
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.appointments.Reassign(txCtx, appt.ID, entry.ClientID); err != nil {
			if errors.Is(err, apptRepo.ErrNotAvailable) {
				return ErrNoLongerAvailable
			}
			return fmt.Errorf("%w: reassign appointment: %v", ErrInternal, err)
		}
		if err := u.waitlist.Delete(txCtx, entry.ID); err != nil && !errors.Is(err, wlRepo.ErrEntryNotFound) {
			return fmt.Errorf("%w: delete waitlist entry: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoLongerAvailable) {
			u.logger.Warn("Execute: appointment id=%d lost to a concurrent assignment", appt.ID)
			return nil, ErrNoLongerAvailable
		}
		u.logger.Error("Execute: transaction failed for entry id=%d: %v", req.EntryID, err)
		return nil, err
	}

	appt.ClientID = entry.ClientID
	appt.Status = domain.StatusPending
	resp := &Response{Appointment: appt}

	token, err := u.tokens.IssueForAppointment(ctx, appt, domain.TokenTypeConfirm)
	if err != nil {
		u.logger.Error("Execute: appointment id=%d reassigned but token issuance failed: %v", appt.ID, err)
		return resp, ErrTokenIssueFailed
	}
	resp.Token = token.Token

	u.logger.Info("Execute: appointment id=%d reassigned to client=%d, entry id=%d fulfilled", appt.ID, entry.ClientID, entry.ID)
	return resp, nil
}
