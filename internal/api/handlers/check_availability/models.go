package check_availability

import (
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	checkAvailability "github.com/rkoto/TanaTours-ReservationService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VehicleID           int64             `json:"vehicleId"`
	StartDate           string            `json:"startDate"`
	EndDate             string            `json:"endDate"`
	DurationDays        int               `json:"durationDays"`
	Available           bool              `json:"available"`
	AvailabilityUnknown bool              `json:"availabilityUnknown,omitempty"`
	Conflict            *ConflictResponse `json:"conflict,omitempty"`
}

// ConflictResponse пересекающийся период для показа пользователю
type ConflictResponse struct {
	ReservationID int64  `json:"reservationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		VehicleID:           resp.VehicleID,
		StartDate:           resp.Period.Start.Format(domain.DateFormat),
		EndDate:             resp.Period.End.Format(domain.DateFormat),
		DurationDays:        resp.Period.Days(),
		Available:           resp.Available,
		AvailabilityUnknown: resp.AvailabilityUnknown,
	}

	if resp.Conflict != nil {
		out.Conflict = &ConflictResponse{
			ReservationID: resp.Conflict.ReservationID,
			StartDate:     resp.Conflict.Period.Start.Format(domain.DateFormat),
			EndDate:       resp.Conflict.Period.End.Format(domain.DateFormat),
		}
	}

	return out
}
