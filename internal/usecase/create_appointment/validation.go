package create_appointment

import (
	"fmt"
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/pkg/timeutil"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if !req.Auth.CanManageEmployee(req.EmployeeID) {
		return fmt.Errorf("%w: employee %d outside caller scope", ErrAccessDenied, req.EmployeeID)
	}
	return nil
}

// checkWorkingHours applies the weekday schedule to a slot expressed in
// minutes of the local day. The slot is admissible when at least one work
// window fully contains it and the slot does not overlap that window's
// break. A slot rejected by one window's break may still be rescued by
// another window on the same day (split shifts).
func checkWorkingHours(entries []*domain.WeeklyScheduleEntry, slotStart, slotEnd int) error {
	usable := 0
	contained := false

	for _, entry := range entries {
		if !entry.HasValidWorkWindow() {
			continue
		}
		usable++

		entryStart, err := entry.EntryTime.Minutes()
		if err != nil {
			continue
		}
		entryEnd, err := entry.ExitTime.Minutes()
		if err != nil {
			continue
		}

		if slotStart < entryStart || slotEnd > entryEnd {
			continue
		}
		contained = true

		if !entry.HasValidBreak() {
			return nil
		}
		breakStart, err := entry.BreakStart.Minutes()
		if err != nil {
			return nil
		}
		breakEnd, err := entry.BreakEnd.Minutes()
		if err != nil {
			return nil
		}
		if !timeutil.RangesOverlap(slotStart, slotEnd, breakStart, breakEnd) {
			return nil
		}
	}

	// "No schedule" is reserved for an empty weekday. A day that has entries,
	// even if none of them forms a usable window, rejects as outside hours.
	if len(entries) == 0 {
		return ErrNoScheduleForDay
	}
	if usable == 0 || !contained {
		return ErrOutsideWorkingHours
	}
	return ErrBreakConflict
}

// checkVacations rejects any date that falls inside a vacation range.
func checkVacations(vacations []*domain.VacationRange, date time.Time) error {
	for _, v := range vacations {
		if v.Contains(date) {
			return ErrEmployeeOnVacation
		}
	}
	return nil
}
