package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

func TestVacationRange_Contains(t *testing.T) {
	v := &VacationRange{
		StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"day before", time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), false},
		{"first day inclusive", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), true},
		{"middle", time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), true},
		{"last day inclusive", time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), true},
		{"day after", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), false},
		{"time of day ignored", time.Date(2026, 8, 14, 23, 59, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Contains(tt.date))
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-03-16 is a Monday, 2026-03-22 a Sunday.
	assert.Equal(t, 1, ISOWeekday(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, ISOWeekday(time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)))
}

func TestWeeklyScheduleEntry_Validity(t *testing.T) {
	breakStart := types.TimeString("13:00")
	breakEnd := types.TimeString("14:00")

	entry := &WeeklyScheduleEntry{
		EntryTime:  "09:00",
		ExitTime:   "17:00",
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	}
	assert.True(t, entry.HasValidWorkWindow())
	assert.True(t, entry.HasValidBreak())

	inverted := &WeeklyScheduleEntry{EntryTime: "17:00", ExitTime: "09:00"}
	assert.False(t, inverted.HasValidWorkWindow())

	noBreak := &WeeklyScheduleEntry{EntryTime: "09:00", ExitTime: "17:00"}
	assert.False(t, noBreak.HasValidBreak())

	invertedBreak := &WeeklyScheduleEntry{
		EntryTime:  "09:00",
		ExitTime:   "17:00",
		BreakStart: &breakEnd,
		BreakEnd:   &breakStart,
	}
	assert.False(t, invertedBreak.HasValidBreak())
}
