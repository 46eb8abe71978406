package consume_confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	wlRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/waitlist"
	"github.com/citaflow/CITA-SchedulingService/internal/integrations/notifier"
	"github.com/citaflow/CITA-SchedulingService/internal/service/confirmations"
)

// UseCase handles confirmation links end to end: Resolve shows what a link
// points at, Act applies the visitor's decision. The status transition and
// the guarded token consumption run in one transaction, consumption last, so
// a failed transition never burns the token.
type UseCase struct {
	tokens       TokenService
	tokenIssuer  TokenIssuer
	appointments AppointmentRepository
	waitlist     WaitlistRepository
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates a consume-confirmation use case.
func NewUseCase(
	tokens TokenService,
	tokenIssuer TokenIssuer,
	appointments AppointmentRepository,
	waitlist WaitlistRepository,
	n Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		tokens:       tokens,
		tokenIssuer:  tokenIssuer,
		appointments: appointments,
		waitlist:     waitlist,
		notifier:     n,
		txManager:    txManager,
		logger:       logger,
	}
}

// Resolve validates a link without consuming it and loads what it is bound
// to, for display on the confirmation page.
func (u *UseCase) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	if req == nil || req.TokenValue == "" {
		return nil, fmt.Errorf("%w: token value is required", ErrInvalidInput)
	}

	token, err := u.tokens.Resolve(ctx, req.TokenValue, req.Type)
	if err != nil {
		return nil, u.mapTokenError("Resolve", err)
	}

	resp := &ResolveResponse{Token: token}

	if token.WaitlistEntryID != nil {
		entry, err := u.waitlist.GetByID(ctx, *token.WaitlistEntryID)
		if err != nil {
			if errors.Is(err, wlRepo.ErrEntryNotFound) {
				return nil, ErrNoLongerAvailable
			}
			u.logger.Error("Resolve: failed to load waitlist entry id=%d: %v", *token.WaitlistEntryID, err)
			return nil, fmt.Errorf("%w: load waitlist entry: %v", ErrInternal, err)
		}
		resp.WaitlistEntry = entry

		appt, err := u.appointments.GetByID(ctx, entry.AppointmentID)
		if err == nil {
			resp.Appointment = appt
		} else if !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			u.logger.Error("Resolve: failed to load appointment id=%d: %v", entry.AppointmentID, err)
			return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
		}
		return resp, nil
	}

	if token.AppointmentID == nil {
		u.logger.Error("Resolve: token id=%d of type %s is bound to nothing", token.ID, token.Type)
		return nil, fmt.Errorf("%w: token without binding", ErrInternal)
	}

	appt, err := u.appointments.GetByID(ctx, *token.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.logger.Error("Resolve: failed to load appointment id=%d: %v", *token.AppointmentID, err)
		return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
	}
	resp.Appointment = appt

	return resp, nil
}

// Act applies the visitor's confirm/reject decision and consumes the token.
func (u *UseCase) Act(ctx context.Context, req *ActRequest) (*ActResponse, error) {
	if req == nil || req.TokenValue == "" {
		return nil, fmt.Errorf("%w: token value is required", ErrInvalidInput)
	}

	token, err := u.tokens.Resolve(ctx, req.TokenValue, req.Type)
	if err != nil {
		return nil, u.mapTokenError("Act", err)
	}

	u.logger.Info("Act: %s action=%s token id=%d", req.Type, req.Action, token.ID)

	if req.Type == domain.TokenTypeWaitlist {
		return u.actWaitlist(ctx, token, req.Action)
	}
	return u.actAppointment(ctx, token, req.Type, req.Action)
}

// actAppointment handles confirm, delete and change tokens.
func (u *UseCase) actAppointment(ctx context.Context, token *domain.ConfirmationToken, typ domain.TokenType, action domain.ConfirmationAction) (*ActResponse, error) {
	if token.AppointmentID == nil {
		u.logger.Error("actAppointment: token id=%d of type %s has no appointment", token.ID, typ)
		return nil, fmt.Errorf("%w: token without appointment binding", ErrInternal)
	}

	appt, err := u.appointments.GetByID(ctx, *token.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.logger.Error("actAppointment: failed to load appointment id=%d: %v", *token.AppointmentID, err)
		return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
	}

	if appt.IsTerminal() {
		u.logger.Warn("actAppointment: appointment id=%d is completed, token id=%d refused", appt.ID, token.ID)
		return nil, ErrAppointmentCompleted
	}

	next, expected, hasTransition := transitionFor(typ, action)

	// Waitlisted clients are collected before any state change so the
	// cancellation notification can include them.
	var waitlisted []*domain.WaitlistEntry
	if typ == domain.TokenTypeDelete && action == domain.ActionConfirm {
		waitlisted, err = u.waitlist.ListByAppointment(ctx, appt.ID)
		if err != nil {
			u.logger.Error("actAppointment: failed to list waitlist for appointment id=%d: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: list waitlist: %v", ErrInternal, err)
		}
	}

	resp := &ActResponse{Action: action, Appointment: appt}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if hasTransition {
			if err := u.appointments.UpdateStatusIf(txCtx, appt.ID, next, expected); err != nil {
				if errors.Is(err, apptRepo.ErrNotAvailable) {
					return ErrNoLongerAvailable
				}
				return fmt.Errorf("%w: update status: %v", ErrInternal, err)
			}
		}

		if typ == domain.TokenTypeConfirm && action == domain.ActionConfirm {
			removed, err := u.appointments.DeleteSiblings(txCtx, appt.CompanyID, appt.EmployeeID, appt.ServiceID, appt.StartAt, appt.ID)
			if err != nil {
				return fmt.Errorf("%w: delete siblings: %v", ErrInternal, err)
			}
			resp.RemovedSiblings = removed
		}

		// Consumption is the last write: a failed transition above leaves
		// the token intact for a retry.
		if err := u.tokens.Consume(txCtx, token); err != nil {
			return u.mapTokenError("actAppointment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hasTransition {
		appt.Status = next
	}

	switch {
	case typ == domain.TokenTypeDelete && action == domain.ActionConfirm:
		u.notifier.Notify(ctx, notifier.EventAppointmentCancelled, buildPayload(appt, u.offerFreedSlot(ctx, appt, waitlisted)))
	case typ == domain.TokenTypeChange && action == domain.ActionConfirm:
		u.notifier.Notify(ctx, notifier.EventAppointmentModified, buildPayload(appt, nil))
	}

	u.logger.Info("actAppointment: appointment id=%d now %s, token id=%d consumed, siblings removed=%d",
		appt.ID, appt.Status, token.ID, resp.RemovedSiblings)
	return resp, nil
}

// actWaitlist handles waitlist tokens: confirm takes over the freed slot,
// reject withdraws the entry. The fresh confirmation token for a reassigned
// appointment is issued after the transaction; if that fails the
// reassignment is kept and ErrTokenIssueFailed reported.
func (u *UseCase) actWaitlist(ctx context.Context, token *domain.ConfirmationToken, action domain.ConfirmationAction) (*ActResponse, error) {
	if token.WaitlistEntryID == nil {
		u.logger.Error("actWaitlist: token id=%d has no waitlist entry", token.ID)
		return nil, fmt.Errorf("%w: token without waitlist binding", ErrInternal)
	}

	entry, err := u.waitlist.GetByID(ctx, *token.WaitlistEntryID)
	if err != nil {
		if errors.Is(err, wlRepo.ErrEntryNotFound) {
			return nil, ErrNoLongerAvailable
		}
		u.logger.Error("actWaitlist: failed to load entry id=%d: %v", *token.WaitlistEntryID, err)
		return nil, fmt.Errorf("%w: load waitlist entry: %v", ErrInternal, err)
	}

	if action == domain.ActionReject {
		err = u.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := u.waitlist.Delete(txCtx, entry.ID); err != nil && !errors.Is(err, wlRepo.ErrEntryNotFound) {
				return fmt.Errorf("%w: delete waitlist entry: %v", ErrInternal, err)
			}
			return u.mapOK(u.tokens.Consume(txCtx, token))
		})
		if err != nil {
			return nil, err
		}
		u.logger.Info("actWaitlist: entry id=%d withdrawn via token id=%d", entry.ID, token.ID)
		return &ActResponse{Action: action}, nil
	}

	appt, err := u.appointments.GetByID(ctx, entry.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.logger.Error("actWaitlist: failed to load appointment id=%d: %v", entry.AppointmentID, err)
		return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
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
		return u.mapOK(u.tokens.Consume(txCtx, token))
	})
	if err != nil {
		return nil, err
	}

	appt.ClientID = entry.ClientID
	appt.Status = domain.StatusPending
	resp := &ActResponse{Action: action, Appointment: appt}

	newToken, err := u.tokenIssuer.IssueForAppointment(ctx, appt, domain.TokenTypeConfirm)
	if err != nil {
		u.logger.Error("actWaitlist: appointment id=%d reassigned but token issuance failed: %v", appt.ID, err)
		return resp, ErrTokenIssueFailed
	}
	resp.NewToken = newToken.Token

	u.logger.Info("actWaitlist: appointment id=%d reassigned to client=%d, entry id=%d fulfilled", appt.ID, entry.ClientID, entry.ID)
	return resp, nil
}

// transitionFor maps a token type and action to the lifecycle transition it
// triggers. Rejecting a cancellation request keeps the appointment as is.
func transitionFor(typ domain.TokenType, action domain.ConfirmationAction) (next domain.AppointmentStatus, expected []domain.AppointmentStatus, ok bool) {
	switch typ {
	case domain.TokenTypeConfirm, domain.TokenTypeChange:
		if action == domain.ActionConfirm {
			return domain.StatusConfirmed, []domain.AppointmentStatus{domain.StatusPending}, true
		}
		return domain.StatusRejected, []domain.AppointmentStatus{domain.StatusPending}, true
	case domain.TokenTypeDelete:
		if action == domain.ActionConfirm {
			return domain.StatusCancelled, []domain.AppointmentStatus{domain.StatusConfirmed}, true
		}
		return "", nil, false
	default:
		return "", nil, false
	}
}

// mapTokenError converts confirmation service errors into use case errors.
func (u *UseCase) mapTokenError(op string, err error) error {
	switch {
	case errors.Is(err, confirmations.ErrTokenNotFound):
		return ErrTokenNotFound
	case errors.Is(err, confirmations.ErrTokenUsed):
		return ErrTokenUsed
	case errors.Is(err, confirmations.ErrTokenExpired):
		return ErrTokenExpired
	default:
		u.logger.Error("%s: token service error: %v", op, err)
		return fmt.Errorf("%w: token service: %v", ErrInternal, err)
	}
}

// mapOK is mapTokenError for calls where nil is the common case.
func (u *UseCase) mapOK(err error) error {
	if err == nil {
		return nil
	}
	return u.mapTokenError("consume", err)
}

// offerFreedSlot turns the collected waitlist entries into notification
// recipients, minting a waitlist token per entry so each client gets a claim
// link for the freed slot. A failed issuance drops the link, not the client.
func (u *UseCase) offerFreedSlot(ctx context.Context, appt *domain.Appointment, entries []*domain.WaitlistEntry) []notifier.WaitlistedClient {
	var clients []notifier.WaitlistedClient
	for _, e := range entries {
		c := notifier.WaitlistedClient{
			EntryID:  e.ID,
			ClientID: e.ClientID,
			Phone:    e.ClientPhone,
		}
		token, err := u.tokenIssuer.IssueForWaitlist(ctx, e, appt.StartAt)
		if err != nil {
			u.logger.Error("offerFreedSlot: failed to issue waitlist token for entry id=%d: %v", e.ID, err)
		} else {
			c.Token = token.Token
		}
		clients = append(clients, c)
	}
	return clients
}

func buildPayload(appt *domain.Appointment, waitlisted []notifier.WaitlistedClient) notifier.Payload {
	return notifier.Payload{
		Appointment: notifier.AppointmentPayload{
			ID:         appt.ID,
			CompanyID:  appt.CompanyID,
			EmployeeID: appt.EmployeeID,
			ClientID:   appt.ClientID,
			ServiceID:  appt.ServiceID,
			StartAt:    appt.StartAt.Format(time.RFC3339),
			EndAt:      appt.EndAt.Format(time.RFC3339),
			Status:     string(appt.Status),
		},
		WaitlistedClients: waitlisted,
	}
}
