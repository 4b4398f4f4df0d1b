package availability

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

func interval(t *testing.T, id int64, status domain.ReservationStatus, start, end time.Time) domain.BookedInterval {
	t.Helper()
	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	return domain.BookedInterval{Range: r, ReservationID: id, Status: status}
}

func TestRegistry_EmptyIsVacuouslyAvailable(t *testing.T) {
	reg := NewRegistry(1, nil)

	assert.True(t, reg.IsDateAvailable(date(2024, 6, 10)))

	r, err := domain.NewDateRange(date(2024, 6, 10), date(2024, 6, 15))
	require.NoError(t, err)
	assert.True(t, reg.IsPeriodAvailable(r))
	assert.Empty(t, reg.UnavailableDates())
}

func TestRegistry_IsPeriodAvailable(t *testing.T) {
	reg := NewRegistry(1, []domain.BookedInterval{
		interval(t, 100, domain.StatusConfirmed, date(2024, 6, 10), date(2024, 6, 15)),
	})

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"before the booking", date(2024, 6, 5), date(2024, 6, 9), true},
		{"after the booking", date(2024, 6, 16), date(2024, 6, 20), true},
		{"overlaps start", date(2024, 6, 8), date(2024, 6, 11), false},
		{"overlaps end", date(2024, 6, 14), date(2024, 6, 18), false},
		{"inside the booking", date(2024, 6, 11), date(2024, 6, 14), false},
		{"covers the booking", date(2024, 6, 8), date(2024, 6, 18), false},
		{"touches the last booked day", date(2024, 6, 15), date(2024, 6, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := domain.NewDateRange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.available, reg.IsPeriodAvailable(r))
		})
	}
}

func TestRegistry_CancelledIntervalsAreInert(t *testing.T) {
	reg := NewRegistry(1, []domain.BookedInterval{
		interval(t, 100, domain.StatusCancelledByClient, date(2024, 6, 10), date(2024, 6, 15)),
		interval(t, 101, domain.StatusCompleted, date(2024, 6, 20), date(2024, 6, 25)),
	})

	r, err := domain.NewDateRange(date(2024, 6, 10), date(2024, 6, 25))
	require.NoError(t, err)
	assert.True(t, reg.IsPeriodAvailable(r), "cancelled and completed bookings release their dates")
	assert.Empty(t, reg.UnavailableDates())
	assert.Empty(t, reg.ActiveIntervals())
}

func TestRegistry_SingleDayAgreesWithPeriod(t *testing.T) {
	reg := NewRegistry(1, []domain.BookedInterval{
		interval(t, 100, domain.StatusPending, date(2024, 6, 10), date(2024, 6, 15)),
	})

	for d := date(2024, 6, 8); !d.After(date(2024, 6, 17)); d = d.AddDate(0, 0, 1) {
		r, err := domain.NewDateRange(d, d)
		require.NoError(t, err)
		assert.Equal(t, reg.IsDateAvailable(d), reg.IsPeriodAvailable(r),
			"single-day period check must agree with the date check on %s", d.Format(domain.DateFormat))
	}
}

func TestRegistry_FindConflict(t *testing.T) {
	reg := NewRegistry(1, []domain.BookedInterval{
		interval(t, 200, domain.StatusConfirmed, date(2024, 6, 18), date(2024, 6, 20)),
		interval(t, 100, domain.StatusConfirmed, date(2024, 6, 10), date(2024, 6, 15)),
	})

	t.Run("returns the earliest-starting conflict", func(t *testing.T) {
		r, err := domain.NewDateRange(date(2024, 6, 12), date(2024, 6, 19))
		require.NoError(t, err)
		conflict, found := reg.FindConflict(r)
		require.True(t, found)
		assert.Equal(t, int64(100), conflict.ReservationID)
	})

	t.Run("no conflict", func(t *testing.T) {
		r, err := domain.NewDateRange(date(2024, 6, 16), date(2024, 6, 17))
		require.NoError(t, err)
		_, found := reg.FindConflict(r)
		assert.False(t, found)
	})
}

func TestRegistry_UnavailableDates(t *testing.T) {
	reg := NewRegistry(1, []domain.BookedInterval{
		interval(t, 100, domain.StatusConfirmed, date(2024, 6, 10), date(2024, 6, 12)),
		// Overlapping booking: shared days must not be duplicated
		interval(t, 101, domain.StatusPending, date(2024, 6, 12), date(2024, 6, 14)),
		// Cancelled booking contributes nothing
		interval(t, 102, domain.StatusCancelledByAdmin, date(2024, 6, 20), date(2024, 6, 22)),
	})

	dates := reg.UnavailableDates()
	want := []time.Time{
		date(2024, 6, 10),
		date(2024, 6, 11),
		date(2024, 6, 12),
		date(2024, 6, 13),
		date(2024, 6, 14),
	}
	assert.Equal(t, want, dates, "deduplicated and chronological")
}
