package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	apptRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	"github.com/citaflow/CITA-SchedulingService/internal/service/appointments/models"
)

// Service covers the scoped read and direct status-change operations on
// appointments. Creation and token-driven transitions live in their own
// use cases.
type Service struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewService creates an appointments service.
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// GetByID fetches one appointment inside the caller's scope.
// Rows outside the tenant, or outside a staff member's own appointments,
// come back as not found rather than forbidden so their existence leaks
// nothing across tenants.
func (s *Service) GetByID(ctx context.Context, req *models.GetAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for employee=%d", req.AppointmentID, req.Auth.EmployeeID)

	appt, err := s.fetchScoped(ctx, req.AppointmentID, req.Auth)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// List fetches an employee's appointments with optional status/period
// filters. Staff can only list their own; bosses any employee of the tenant.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for employee=%d by employee=%d", req.EmployeeID, req.Auth.EmployeeID)

	if !req.Auth.CanManageEmployee(req.EmployeeID) {
		s.logger.Warn("List: employee=%d denied listing for employee=%d", req.Auth.EmployeeID, req.EmployeeID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentFilter{
		CompanyID:  req.Auth.CompanyID,
		EmployeeID: &req.EmployeeID,
		From:       req.From,
		To:         req.To,
	}
	if req.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.apptRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for employee=%d", len(appointments), req.EmployeeID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus moves an appointment to a new state via explicit staff
// action. The state machine is checked in memory first, then enforced again
// by a guarded update so a concurrent transition cannot be overwritten.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s by employee=%d",
		req.AppointmentID, req.Status, req.Auth.EmployeeID)

	next, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.fetchScoped(ctx, req.AppointmentID, req.Auth)
	if err != nil {
		return err
	}

	if !appt.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not permitted for appointment id=%d",
			appt.Status, next, appt.ID)
		return ErrLocked
	}

	err = s.apptRepo.UpdateStatusIf(ctx, appt.ID, next, []domain.AppointmentStatus{appt.Status})
	if err != nil {
		if errors.Is(err, apptRepo.ErrNotAvailable) {
			s.logger.Warn("UpdateStatus: appointment id=%d changed concurrently", appt.ID)
			return ErrLocked
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to %s", appt.ID, next)
	return nil
}

// fetchScoped loads an appointment and applies the caller's scope.
func (s *Service) fetchScoped(ctx context.Context, id int64, auth domain.AuthContext) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("fetchScoped: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("fetchScoped: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetchScoped - repository error: %v", ErrInternal, err)
	}

	if appt.CompanyID != auth.CompanyID {
		s.logger.Warn("fetchScoped: appointment id=%d outside tenant company=%d", id, auth.CompanyID)
		return nil, ErrAppointmentNotFound
	}
	if !auth.CanManageEmployee(appt.EmployeeID) {
		s.logger.Warn("fetchScoped: employee=%d denied access to appointment id=%d", auth.EmployeeID, id)
		return nil, ErrAccessDenied
	}

	return appt, nil
}
