package bookingform

import (
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// Mode records which pair of fields the user provided last; the third field
// is always derived from the other two and never independently editable.
type Mode string

const (
	// ModeFromDuration derives the end date from start + duration
	ModeFromDuration Mode = "fromDuration"
	// ModeFromEndDate derives the duration from start + end
	ModeFromEndDate Mode = "fromEndDate"
)

// State is the immutable booking-form state. Transitions go through Apply;
// there is no other way to mutate it, which keeps the derivation rules
// testable without any UI.
//
// Day counting is inclusive everywhere: a 1-day booking has end == start,
// and duration == daysBetween + 1. The legacy flows disagreed on this
// (the circuit flow dropped the +1 in one place); the inclusive convention
// matches how a rental occupies both boundary days.
type State struct {
	Mode         Mode
	Start        *time.Time
	End          *time.Time
	DurationDays *int

	Adults   int
	Children int
}

// NewState returns the initial empty form state
func NewState() State {
	return State{Mode: ModeFromDuration}
}

// Event is a single user edit applied to the form state
type Event interface {
	isEvent()
}

// SetStart sets the start date, keeping the current derivation mode
type SetStart struct{ Date time.Time }

// SetEnd sets the end date and switches to ModeFromEndDate
type SetEnd struct{ Date time.Time }

// SetDuration sets the duration in days and switches to ModeFromDuration
type SetDuration struct{ Days int }

// SetAdults sets the number of adults
type SetAdults struct{ Count int }

// SetChildren sets the number of children
type SetChildren struct{ Count int }

// Reset clears all date fields, keeping the party breakdown
type Reset struct{}

func (SetStart) isEvent()    {}
func (SetEnd) isEvent()      {}
func (SetDuration) isEvent() {}
func (SetAdults) isEvent()   {}
func (SetChildren) isEvent() {}
func (Reset) isEvent()       {}

// Apply returns the state after one user edit. On a validation error the
// previous state is returned unchanged, so a form can keep the last valid
// values while surfacing the rejection.
func Apply(s State, ev Event) (State, error) {
	next := s

	switch e := ev.(type) {
	case SetStart:
		d := domain.Day(e.Date)
		next.Start = &d

	case SetEnd:
		d := domain.Day(e.Date)
		next.End = &d
		next.Mode = ModeFromEndDate

	case SetDuration:
		if e.Days <= 0 {
			return s, ErrInvalidDuration
		}
		days := e.Days
		next.DurationDays = &days
		next.Mode = ModeFromDuration

	case SetAdults:
		if e.Count < 0 {
			return s, ErrInvalidPartySize
		}
		next.Adults = e.Count
		return next, nil

	case SetChildren:
		if e.Count < 0 {
			return s, ErrInvalidPartySize
		}
		next.Children = e.Count
		return next, nil

	case Reset:
		next.Start = nil
		next.End = nil
		next.DurationDays = nil
		next.Mode = ModeFromDuration
		return next, nil
	}

	derived, err := derive(next)
	if err != nil {
		return s, err
	}
	return derived, nil
}

// derive recomputes the dependent field according to the current mode
func derive(s State) (State, error) {
	switch s.Mode {
	case ModeFromDuration:
		if s.Start != nil && s.DurationDays != nil {
			end := domain.EndFromDuration(*s.Start, *s.DurationDays)
			s.End = &end
		}

	case ModeFromEndDate:
		if s.Start != nil && s.End != nil {
			r, err := domain.NewDateRange(*s.Start, *s.End)
			if err != nil {
				return s, err
			}
			days := r.Days()
			s.DurationDays = &days
		}
	}
	return s, nil
}

// PartySize returns the total of adults and children
func (s State) PartySize() int {
	return s.Adults + s.Children
}

// CandidateRange assembles the validated period once both dates are known
func (s State) CandidateRange() (domain.DateRange, error) {
	if s.Start == nil || s.End == nil {
		return domain.DateRange{}, ErrIncomplete
	}
	return domain.NewDateRange(*s.Start, *s.End)
}

// Validate checks the invariants a submittable form must hold
func (s State) Validate() error {
	if _, err := s.CandidateRange(); err != nil {
		return err
	}
	if s.DurationDays == nil || *s.DurationDays <= 0 {
		return ErrInvalidDuration
	}
	if s.PartySize() < domain.MinPartySize {
		return ErrInvalidPartySize
	}
	return nil
}
