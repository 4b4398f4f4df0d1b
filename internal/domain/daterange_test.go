package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(date(2024, 6, 10), date(2024, 6, 15))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 6, 10), r.Start)
		assert.Equal(t, date(2024, 6, 15), r.End)
	})

	t.Run("same-day range is valid", func(t *testing.T) {
		r, err := NewDateRange(date(2024, 6, 10), date(2024, 6, 10))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := NewDateRange(date(2024, 6, 15), date(2024, 6, 10))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("time-of-day is truncated before comparison", func(t *testing.T) {
		// 10th at 23:00 to 10th at 01:00 is the same day after truncation
		start := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC)
		r, err := NewDateRange(start, end)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 6, 10), r.Start)
		assert.Equal(t, date(2024, 6, 10), r.End)
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := mustRange(t, date(2024, 6, 10), date(2024, 6, 15))

	assert.True(t, r.Contains(date(2024, 6, 10)), "start boundary is occupied")
	assert.True(t, r.Contains(date(2024, 6, 15)), "end boundary is occupied")
	assert.True(t, r.Contains(date(2024, 6, 12)))
	assert.False(t, r.Contains(date(2024, 6, 9)))
	assert.False(t, r.Contains(date(2024, 6, 16)))
}

func TestDateRange_Overlaps(t *testing.T) {
	booked := mustRange(t, date(2024, 6, 10), date(2024, 6, 15))

	tests := []struct {
		name      string
		candidate DateRange
		want      bool
	}{
		{"partial overlap on the left", mustRange(t, date(2024, 6, 8), date(2024, 6, 11)), true},
		{"partial overlap on the right", mustRange(t, date(2024, 6, 14), date(2024, 6, 18)), true},
		{"candidate inside booked", mustRange(t, date(2024, 6, 11), date(2024, 6, 14)), true},
		{"booked inside candidate", mustRange(t, date(2024, 6, 8), date(2024, 6, 18)), true},
		{"shared boundary day conflicts", mustRange(t, date(2024, 6, 15), date(2024, 6, 20)), true},
		{"adjacent before does not conflict", mustRange(t, date(2024, 6, 5), date(2024, 6, 9)), false},
		{"adjacent after does not conflict", mustRange(t, date(2024, 6, 16), date(2024, 6, 20)), false},
		{"identical ranges conflict", booked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.candidate))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.candidate.Overlaps(booked))
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 1, mustRange(t, date(2024, 6, 10), date(2024, 6, 10)).Days())
	assert.Equal(t, 6, mustRange(t, date(2024, 6, 10), date(2024, 6, 15)).Days())
	assert.Equal(t, 31, mustRange(t, date(2024, 7, 1), date(2024, 7, 31)).Days())
}

func TestEndFromDuration(t *testing.T) {
	// A 5-day booking starting June 1 occupies June 1 through June 5
	assert.Equal(t, date(2024, 6, 5), EndFromDuration(date(2024, 6, 1), 5))
	// A 1-day booking ends on its start day
	assert.Equal(t, date(2024, 6, 1), EndFromDuration(date(2024, 6, 1), 1))
	// Crosses a month boundary
	assert.Equal(t, date(2024, 7, 2), EndFromDuration(date(2024, 6, 28), 5))
}

func TestDaysAndEndFromDurationRoundTrip(t *testing.T) {
	start := date(2024, 6, 1)
	for days := 1; days <= 10; days++ {
		r := mustRange(t, start, EndFromDuration(start, days))
		assert.Equal(t, days, r.Days())
	}
}

func TestDateRange_String(t *testing.T) {
	r := mustRange(t, date(2024, 6, 10), date(2024, 6, 15))
	assert.Equal(t, "2024-06-10..2024-06-15", r.String())
}
