package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

func TestToAbsoluteInstant(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    types.TimeString
		offset  int
		want    time.Time
		wantErr error
	}{
		{
			name:   "UTC",
			date:   "2026-03-16",
			time:   "10:00",
			offset: 0,
			want:   time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "Madrid winter, UTC+1",
			date:   "2026-01-12",
			time:   "09:30",
			offset: 60,
			want:   time.Date(2026, 1, 12, 8, 30, 0, 0, time.UTC),
		},
		{
			name:   "Mexico City, UTC-6",
			date:   "2026-03-16",
			time:   "10:00",
			offset: -360,
			want:   time.Date(2026, 3, 16, 16, 0, 0, 0, time.UTC),
		},
		{
			name:   "offset crosses midnight into previous day",
			date:   "2026-03-16",
			time:   "01:00",
			offset: 120,
			want:   time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
		},
		{
			name:    "bad date",
			date:    "16-03-2026",
			time:    "10:00",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "bad time",
			date:    "2026-03-16",
			time:    "25:00",
			wantErr: ErrInvalidTime,
		},
		{
			name:    "offset out of range",
			date:    "2026-03-16",
			time:    "10:00",
			offset:  48 * 60,
			wantErr: ErrInvalidOffset,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToAbsoluteInstant(tt.date, tt.time, tt.offset)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{"disjoint", 540, 600, 700, 760, false},
		{"touching boundary is not overlap", 540, 600, 600, 660, false},
		{"touching boundary reversed", 600, 660, 540, 600, false},
		{"partial overlap", 540, 620, 600, 660, true},
		{"contained", 540, 660, 560, 580, true},
		{"identical", 540, 600, 540, 600, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.startA, tt.endA, tt.startB, tt.endB))
		})
	}
}
