package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending           ReservationStatus = "pending"
	StatusConfirmed         ReservationStatus = "confirmed"
	StatusCompleted         ReservationStatus = "completed"
	StatusCancelledByClient ReservationStatus = "cancelled_by_client"
	StatusCancelledByAdmin  ReservationStatus = "cancelled_by_admin"
)

// ResourceType distinguishes the two bookable resource kinds
type ResourceType string

const (
	ResourceVehicle ResourceType = "vehicle"
	ResourceTrip    ResourceType = "trip"
)

// Reservation represents a booking in the system.
// Vehicle reservations carry an arbitrary date range; trip reservations
// reference a predefined travel-date slot instead.
type Reservation struct {
	ID         int64
	Reference  string // public UUID handed to the client
	UserID     int64
	ResType    ResourceType
	ResourceID int64

	// Vehicle rentals: the rented period. Zero-valued for trip reservations.
	Period DateRange
	// Trip bookings: the chosen travel-date slot. Nil for vehicle rentals.
	SlotID *int64

	PartySize int
	Adults    int
	Children  int

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Preferences   *string

	Status             ReservationStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocks reports whether this reservation blocks new bookings.
// Only pending and confirmed reservations hold their dates; cancelled and
// completed ones are inert for availability purposes.
func (r *Reservation) Blocks() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByClient || r.Status == StatusCancelledByAdmin
}

// BookedInterval is the availability view of a reservation: the occupied
// range plus just enough identity to report a conflict back to the caller.
type BookedInterval struct {
	Range         DateRange
	ReservationID int64
	Status        ReservationStatus
}

// IsActive reports whether the interval blocks new bookings
func (b BookedInterval) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ResourceReservationsFilter фильтр для выборки бронирований ресурса (back-office)
type ResourceReservationsFilter struct {
	ResType         ResourceType
	ResourceID      int64
	StartDate       *time.Time         // начало периода (опционально)
	EndDate         *time.Time         // конец периода (опционально)
	Status          *ReservationStatus // фильтр по статусу (опционально)
	IncludeInactive bool               // включать ли отменённые и завершённые
}
