// Package timeutil holds the pure time math the scheduling core is built on:
// conversion of local wall-clock input to absolute UTC instants and strict
// interval overlap on minutes-of-day.
package timeutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

const dateLayout = "2006-01-02"

// Offsets further than a day from UTC cannot correspond to a real timezone.
const maxOffsetMinutes = 24 * 60

var (
	// ErrInvalidDate is returned when a date is not a valid "YYYY-MM-DD" value.
	ErrInvalidDate = errors.New("timeutil: invalid date")

	// ErrInvalidTime is returned when a time is not a valid "HH:MM" value.
	ErrInvalidTime = errors.New("timeutil: invalid time")

	// ErrInvalidOffset is returned when a timezone offset is out of range.
	ErrInvalidOffset = errors.New("timeutil: invalid timezone offset")
)

// ToAbsoluteInstant combines a date-only value and a time-of-day value,
// interpreting them as local time at the given UTC offset, and returns the
// equivalent UTC instant. The offset is in minutes east of UTC, so UTC+2
// is +120 and UTC-5 is -300.
func ToAbsoluteInstant(date string, timeOfDay types.TimeString, offsetMinutes int) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	minutes, err := timeOfDay.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, timeOfDay)
	}

	if offsetMinutes < -maxOffsetMinutes || offsetMinutes > maxOffsetMinutes {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidOffset, offsetMinutes)
	}

	zone := time.FixedZone("client", offsetMinutes*60)
	local := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, zone)
	return local.UTC(), nil
}

// RangesOverlap reports whether two half-open minute intervals truly
// intersect. Touching boundaries (endA == startB) do not count as overlap.
func RangesOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}
