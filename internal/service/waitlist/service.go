package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	wlRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/waitlist"
)

// Service manages waitlist entries: registration against a full slot and
// withdrawal. Reassignment into a freed slot is its own use case.
type Service struct {
	waitlistRepo WaitlistRepository
	apptRepo     AppointmentRepository
	logger       Logger
}

// NewService creates a waitlist service.
func NewService(waitlistRepo WaitlistRepository, apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		apptRepo:     apptRepo,
		logger:       logger,
	}
}

// CreateRequest registers a client as waiting on a specific appointment.
type CreateRequest struct {
	AppointmentID int64
	ClientID      int64
	ClientPhone   *string
	Auth          domain.AuthContext
}

// Create validates the bound appointment and records the entry.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.WaitlistEntry, error) {
	s.logger.Info("Create: client=%d waiting on appointment id=%d", req.ClientID, req.AppointmentID)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	appt, err := s.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Create: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Create: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if appt.CompanyID != req.Auth.CompanyID {
		s.logger.Warn("Create: appointment id=%d outside tenant company=%d", req.AppointmentID, req.Auth.CompanyID)
		return nil, ErrAppointmentNotFound
	}

	entry := &domain.WaitlistEntry{
		CompanyID:     appt.CompanyID,
		AppointmentID: appt.ID,
		ClientID:      req.ClientID,
		ClientPhone:   req.ClientPhone,
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Create: failed to create entry for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: entry id=%d created for appointment id=%d", created.ID, appt.ID)
	return created, nil
}

// Withdraw removes a waitlist entry because the client no longer wants the
// slot.
func (s *Service) Withdraw(ctx context.Context, entryID int64, auth domain.AuthContext) error {
	s.logger.Info("Withdraw: removing entry id=%d", entryID)

	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, wlRepo.ErrEntryNotFound) {
			s.logger.Warn("Withdraw: entry id=%d not found", entryID)
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}
	if entry.CompanyID != auth.CompanyID {
		s.logger.Warn("Withdraw: entry id=%d outside tenant company=%d", entryID, auth.CompanyID)
		return ErrEntryNotFound
	}

	if err := s.waitlistRepo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, wlRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: failed to delete entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Withdraw: entry id=%d removed", entryID)
	return nil
}
