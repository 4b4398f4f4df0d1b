package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a range ends before it starts
var ErrInvalidRange = errors.New("domain: range end precedes start")

// DateRange represents a closed interval [Start, End] at day precision.
// Both boundary days are occupied by a booking, so a same-day range is the
// minimum valid case (a single-day rental).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a validated day-precision range.
// Inputs are truncated to midnight UTC before comparison.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidRange, r.Start.Format(DateFormat), r.End.Format(DateFormat))
	}
	return r, nil
}

// Day truncates a timestamp to midnight UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the given day falls inside the range,
// inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether two closed intervals share at least one day.
// Covers all four shapes: partial overlap on either side, candidate inside
// booked, and booked inside candidate.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Days returns the inclusive day count: a same-day range counts as 1.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// EndFromDuration derives the inclusive end date from a start date and a
// total day count: a 1-day booking ends on its start day.
func EndFromDuration(start time.Time, days int) time.Time {
	return Day(start).AddDate(0, 0, days-1)
}

// String renders the range as "2024-06-10..2024-06-15"
func (r DateRange) String() string {
	return r.Start.Format(DateFormat) + ".." + r.End.Format(DateFormat)
}
