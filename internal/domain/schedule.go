package domain

import (
	"time"

	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

// WeeklyScheduleEntry is one work window of an employee on a weekday.
// An employee may have several entries on the same weekday (split shifts);
// an appointment is admissible if it fits inside any one of them without
// overlapping that entry's break.
type WeeklyScheduleEntry struct {
	ID         int64
	EmployeeID int64
	Weekday    int // 1=Monday .. 7=Sunday

	EntryTime types.TimeString
	ExitTime  types.TimeString

	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasValidWorkWindow reports whether the entry describes a usable window.
// Entries with exit not after entry are ignored by the validator.
func (e *WeeklyScheduleEntry) HasValidWorkWindow() bool {
	return e.ExitTime.IsAfter(e.EntryTime)
}

// HasValidBreak reports whether both break bounds are present and ordered.
func (e *WeeklyScheduleEntry) HasValidBreak() bool {
	return e.BreakStart != nil && e.BreakEnd != nil && e.BreakEnd.IsAfter(*e.BreakStart)
}

// VacationRange is an inclusive calendar-date range during which no
// appointment may start for the employee. Date-only, no time component.
type VacationRange struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
}

// Contains reports whether the given calendar date falls inside the range,
// inclusive on both ends. Only the date parts are compared.
func (v *VacationRange) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(v.StartDate)) && !d.After(truncateToDate(v.EndDate))
}

// ISOWeekday maps time.Weekday to the 1=Monday..7=Sunday convention the
// schedule table uses.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
