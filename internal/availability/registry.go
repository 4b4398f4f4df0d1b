package availability

import (
	"sort"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// Registry holds the booked intervals of a single resource, read-only.
// It is rebuilt from the reservation store (and the catalog fallback) every
// time a resource is inspected; it never mutates reservations.
type Registry struct {
	resourceID int64
	intervals  []domain.BookedInterval
}

// NewRegistry builds a registry for one resource
func NewRegistry(resourceID int64, intervals []domain.BookedInterval) *Registry {
	return &Registry{resourceID: resourceID, intervals: intervals}
}

// ResourceID returns the resource the registry was loaded for
func (r *Registry) ResourceID() int64 {
	return r.resourceID
}

// ActiveIntervals returns only the intervals that block new bookings,
// filtering out cancelled and completed reservations.
func (r *Registry) ActiveIntervals() []domain.BookedInterval {
	active := make([]domain.BookedInterval, 0, len(r.intervals))
	for _, iv := range r.intervals {
		if iv.IsActive() {
			active = append(active, iv)
		}
	}
	return active
}

// IsDateAvailable reports whether a single day is free of active bookings.
// An empty registry is vacuously available.
func (r *Registry) IsDateAvailable(t time.Time) bool {
	for _, iv := range r.ActiveIntervals() {
		if iv.Range.Contains(t) {
			return false
		}
	}
	return true
}

// IsPeriodAvailable reports whether a candidate range is free of conflicts
// with any active booking. This is the authoritative pre-submission check;
// IsDateAvailable agrees with it for a same-day candidate.
func (r *Registry) IsPeriodAvailable(candidate domain.DateRange) bool {
	_, conflict := r.FindConflict(candidate)
	return !conflict
}

// FindConflict returns the earliest-starting active interval overlapping the
// candidate range, so callers can show the conflicting span to the user.
func (r *Registry) FindConflict(candidate domain.DateRange) (domain.BookedInterval, bool) {
	var found domain.BookedInterval
	ok := false
	for _, iv := range r.ActiveIntervals() {
		if !iv.Range.Overlaps(candidate) {
			continue
		}
		if !ok || iv.Range.Start.Before(found.Range.Start) {
			found = iv
			ok = true
		}
	}
	return found, ok
}

// UnavailableDates enumerates every calendar day covered by an active
// interval, deduplicated and in chronological order. Bounded by the sum of
// interval lengths; intended for calendar-widget shading.
func (r *Registry) UnavailableDates() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, iv := range r.ActiveIntervals() {
		for d := iv.Range.Start; !d.After(iv.Range.End); d = d.AddDate(0, 0, 1) {
			seen[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
