package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacitySlot_CheckCapacity(t *testing.T) {
	slot := &CapacitySlot{
		ID:              1,
		TripID:          42,
		MaxPeople:       20,
		RemainingPlaces: 3,
	}

	t.Run("party fits", func(t *testing.T) {
		res := slot.CheckCapacity(3)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3, res.Available)
	})

	t.Run("party exceeds remaining places", func(t *testing.T) {
		res := slot.CheckCapacity(4)
		assert.False(t, res.Allowed)
		assert.Equal(t, 3, res.Available, "available count is reported for the error message")
	})

	t.Run("full slot rejects any party", func(t *testing.T) {
		full := &CapacitySlot{MaxPeople: 20, RemainingPlaces: 0}
		assert.True(t, full.IsFull())
		assert.False(t, full.CheckCapacity(1).Allowed)
	})
}

func TestCapacitySlot_Occupancy(t *testing.T) {
	slot := &CapacitySlot{MaxPeople: 20, RemainingPlaces: 5}
	assert.Equal(t, 15, slot.BookedPlaces())
	assert.InDelta(t, 75.0, slot.OccupancyRate(), 0.001)

	empty := &CapacitySlot{}
	assert.Equal(t, 0.0, empty.OccupancyRate())
}

func TestReservation_Blocks(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		blocks bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusCancelledByClient, false},
		{StatusCancelledByAdmin, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.blocks, r.Blocks())
			assert.Equal(t, tt.blocks, BookedInterval{Status: tt.status}.IsActive())
		})
	}
}
