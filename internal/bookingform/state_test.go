package bookingform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func apply(t *testing.T, s State, events ...Event) State {
	t.Helper()
	var err error
	for _, ev := range events {
		s, err = Apply(s, ev)
		require.NoError(t, err)
	}
	return s
}

func TestApply_DurationDerivesEnd(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 5},
	)

	assert.Equal(t, ModeFromDuration, s.Mode)
	require.NotNil(t, s.End)
	// 5 days starting June 1 occupy June 1 through June 5
	assert.Equal(t, date(2024, 6, 5), *s.End)
}

func TestApply_EndDerivesDuration(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetEnd{Date: date(2024, 6, 5)},
	)

	assert.Equal(t, ModeFromEndDate, s.Mode)
	require.NotNil(t, s.DurationDays)
	assert.Equal(t, 5, *s.DurationDays)
}

func TestApply_StartMovesUnderDurationMode(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 3},
		// Moving the start keeps the duration and re-derives the end
		SetStart{Date: date(2024, 6, 10)},
	)

	require.NotNil(t, s.End)
	assert.Equal(t, date(2024, 6, 12), *s.End)
	require.NotNil(t, s.DurationDays)
	assert.Equal(t, 3, *s.DurationDays)
}

func TestApply_ModeSwitching(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 5},
		// Switching to an explicit end date recomputes the duration
		SetEnd{Date: date(2024, 6, 3)},
	)

	assert.Equal(t, ModeFromEndDate, s.Mode)
	require.NotNil(t, s.DurationDays)
	assert.Equal(t, 3, *s.DurationDays)

	// And switching back to duration re-derives the end
	s = apply(t, s, SetDuration{Days: 10})
	assert.Equal(t, ModeFromDuration, s.Mode)
	require.NotNil(t, s.End)
	assert.Equal(t, date(2024, 6, 10), *s.End)
}

func TestApply_RoundTripIsConsistent(t *testing.T) {
	// duration -> end -> duration must return to the same number
	for days := 1; days <= 7; days++ {
		s := apply(t, NewState(),
			SetStart{Date: date(2024, 6, 1)},
			SetDuration{Days: days},
		)
		require.NotNil(t, s.End)

		s = apply(t, s, SetEnd{Date: *s.End})
		require.NotNil(t, s.DurationDays)
		assert.Equal(t, days, *s.DurationDays)
	}
}

func TestApply_InvalidEventKeepsPreviousState(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 5},
	)

	t.Run("non-positive duration", func(t *testing.T) {
		next, err := Apply(s, SetDuration{Days: 0})
		require.ErrorIs(t, err, ErrInvalidDuration)
		assert.Equal(t, s, next, "previous state survives a rejected edit")
	})

	t.Run("end before start", func(t *testing.T) {
		next, err := Apply(s, SetEnd{Date: date(2024, 5, 1)})
		require.ErrorIs(t, err, domain.ErrInvalidRange)
		assert.Equal(t, s, next)
	})

	t.Run("negative adults", func(t *testing.T) {
		next, err := Apply(s, SetAdults{Count: -1})
		require.ErrorIs(t, err, ErrInvalidPartySize)
		assert.Equal(t, s, next)
	})
}

func TestApply_Reset(t *testing.T) {
	s := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 5},
		SetAdults{Count: 2},
		SetChildren{Count: 1},
		Reset{},
	)

	assert.Nil(t, s.Start)
	assert.Nil(t, s.End)
	assert.Nil(t, s.DurationDays)
	assert.Equal(t, ModeFromDuration, s.Mode)
	// Party breakdown survives a date reset
	assert.Equal(t, 3, s.PartySize())
}

func TestState_CandidateRange(t *testing.T) {
	t.Run("incomplete form", func(t *testing.T) {
		s := apply(t, NewState(), SetStart{Date: date(2024, 6, 1)})
		_, err := s.CandidateRange()
		assert.ErrorIs(t, err, ErrIncomplete)
	})

	t.Run("complete form", func(t *testing.T) {
		s := apply(t, NewState(),
			SetStart{Date: date(2024, 6, 1)},
			SetDuration{Days: 5},
		)
		r, err := s.CandidateRange()
		require.NoError(t, err)
		assert.Equal(t, date(2024, 6, 1), r.Start)
		assert.Equal(t, date(2024, 6, 5), r.End)
	})
}

func TestState_Validate(t *testing.T) {
	base := apply(t, NewState(),
		SetStart{Date: date(2024, 6, 1)},
		SetDuration{Days: 5},
	)

	t.Run("needs at least one traveller", func(t *testing.T) {
		assert.ErrorIs(t, base.Validate(), ErrInvalidPartySize)
	})

	t.Run("submittable", func(t *testing.T) {
		s := apply(t, base, SetAdults{Count: 2})
		assert.NoError(t, s.Validate())
	})
}
