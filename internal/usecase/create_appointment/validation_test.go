package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

func entryWithBreak(entry, exit, breakStart, breakEnd types.TimeString) *domain.WeeklyScheduleEntry {
	return &domain.WeeklyScheduleEntry{
		EntryTime:  entry,
		ExitTime:   exit,
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	}
}

func minutes(t *testing.T, ts types.TimeString) int {
	t.Helper()
	m, err := ts.Minutes()
	if err != nil {
		t.Fatalf("bad time %q: %v", ts, err)
	}
	return m
}

func TestCheckWorkingHours(t *testing.T) {
	monday := []*domain.WeeklyScheduleEntry{
		entryWithBreak("09:00", "17:00", "13:00", "14:00"),
	}

	tests := []struct {
		name    string
		entries []*domain.WeeklyScheduleEntry
		start   types.TimeString
		length  int
		wantErr error
	}{
		{
			name:    "no entries at all",
			entries: nil,
			start:   "10:00",
			length:  30,
			wantErr: ErrNoScheduleForDay,
		},
		{
			name:    "fits cleanly",
			entries: monday,
			start:   "10:00",
			length:  30,
		},
		{
			name:    "before opening",
			entries: monday,
			start:   "08:00",
			length:  30,
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "runs past closing",
			entries: monday,
			start:   "16:45",
			length:  30,
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "overlaps break",
			entries: monday,
			start:   "13:15",
			length:  30,
			wantErr: ErrBreakConflict,
		},
		{
			name:    "ends exactly at break start",
			entries: monday,
			start:   "12:30",
			length:  30,
		},
		{
			name:    "starts exactly at break end",
			entries: monday,
			start:   "14:00",
			length:  30,
		},
		{
			name: "split shift rescues break conflict",
			entries: []*domain.WeeklyScheduleEntry{
				entryWithBreak("09:00", "17:00", "13:00", "14:00"),
				{EntryTime: "12:00", ExitTime: "16:00"},
			},
			start:  "13:15",
			length: 30,
		},
		{
			name: "all containing windows conflict with breaks",
			entries: []*domain.WeeklyScheduleEntry{
				entryWithBreak("09:00", "17:00", "13:00", "14:00"),
				entryWithBreak("12:00", "16:00", "13:00", "14:00"),
			},
			start:   "13:15",
			length:  30,
			wantErr: ErrBreakConflict,
		},
		{
			name: "only invalid windows rejects as outside hours, not no-schedule",
			entries: []*domain.WeeklyScheduleEntry{
				{EntryTime: "17:00", ExitTime: "09:00"},
			},
			start:   "10:00",
			length:  30,
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name: "entry without break accepts anything inside",
			entries: []*domain.WeeklyScheduleEntry{
				{EntryTime: "09:00", ExitTime: "17:00"},
			},
			start:  "13:15",
			length: 30,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotStart := minutes(t, tt.start)
			err := checkWorkingHours(tt.entries, slotStart, slotStart+tt.length)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckVacations(t *testing.T) {
	vacations := []*domain.VacationRange{
		{
			StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	assert.NoError(t, checkVacations(vacations, time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, checkVacations(vacations, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)), ErrEmployeeOnVacation)
	assert.ErrorIs(t, checkVacations(vacations, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)), ErrEmployeeOnVacation)
	assert.NoError(t, checkVacations(vacations, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, checkVacations(nil, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)))
}

func TestValidateRequest(t *testing.T) {
	boss := domain.AuthContext{CompanyID: 1, EmployeeID: 2, Role: domain.RoleBoss}
	staff := domain.AuthContext{CompanyID: 1, EmployeeID: 2, Role: domain.RoleStaff}

	valid := func() *Request {
		return &Request{
			EmployeeID: 5,
			ClientID:   9,
			ServiceID:  3,
			Date:       "2026-03-16",
			StartTime:  "10:00",
			Auth:       boss,
		}
	}

	assert.NoError(t, validateRequest(valid()))

	r := valid()
	r.EmployeeID = 0
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	r = valid()
	r.ClientID = -1
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	r = valid()
	r.Date = ""
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	r = valid()
	r.StartTime = "10:61"
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	// Staff may only book their own agenda.
	r = valid()
	r.Auth = staff
	assert.ErrorIs(t, validateRequest(r), ErrAccessDenied)

	r = valid()
	r.Auth = staff
	r.EmployeeID = staff.EmployeeID
	assert.NoError(t, validateRequest(r))
}
