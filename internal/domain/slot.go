package domain

// CapacitySlot represents a trip's predefined travel-date window with a
// fixed capacity. Trip bookings consume places; date overlap never applies
// to slots, only remaining capacity does.
type CapacitySlot struct {
	ID              int64
	TripID          int64
	Period          DateRange
	MaxPeople       int
	RemainingPlaces int // 0 <= RemainingPlaces <= MaxPeople
}

// CapacityResult is the outcome of a capacity check
type CapacityResult struct {
	Allowed   bool
	Available int // remaining places at check time
}

// CheckCapacity tests a requested party size against the remaining capacity
func (s *CapacitySlot) CheckCapacity(partySize int) CapacityResult {
	return CapacityResult{
		Allowed:   partySize <= s.RemainingPlaces,
		Available: s.RemainingPlaces,
	}
}

// IsFull returns true if the slot has no remaining places
func (s *CapacitySlot) IsFull() bool {
	return s.RemainingPlaces <= 0
}

// BookedPlaces returns the number of already-taken places
func (s *CapacitySlot) BookedPlaces() int {
	return s.MaxPeople - s.RemainingPlaces
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *CapacitySlot) OccupancyRate() float64 {
	if s.MaxPeople == 0 {
		return 0
	}
	return float64(s.BookedPlaces()) / float64(s.MaxPeople) * 100
}
