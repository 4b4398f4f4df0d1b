package domain

// Business validation constants
const (
	MinPartySize          = 1
	MaxPartySize          = 60 // largest coach in the fleet
	MaxRentalDays         = 90
	MaxPreferencesLength  = 1000
	MaxCancellationReason = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, которые удерживают даты и места.
// Используется при подсчёте доступности.
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, не влияющих на доступность
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByAdmin,
}
