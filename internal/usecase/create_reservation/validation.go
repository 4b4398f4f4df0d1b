package create_reservation

import (
	"fmt"
	"strings"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.ResType != domain.ResourceVehicle && req.ResType != domain.ResourceTrip {
		return fmt.Errorf("%w: resType must be %q or %q", ErrInvalidInput, domain.ResourceVehicle, domain.ResourceTrip)
	}

	if req.Adults < 0 || req.Children < 0 {
		return fmt.Errorf("%w: adults and children must be non-negative", ErrInvalidInput)
	}

	if req.PartySize() < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be at least %d", ErrInvalidInput, domain.MinPartySize)
	}

	if req.PartySize() > domain.MaxPartySize {
		return fmt.Errorf("%w: party size cannot exceed %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" || !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: valid customerEmail is required", ErrInvalidInput)
	}

	if req.Preferences != nil && len(*req.Preferences) > domain.MaxPreferencesLength {
		return fmt.Errorf("%w: preferences cannot exceed %d characters", ErrInvalidInput, domain.MaxPreferencesLength)
	}

	switch req.ResType {
	case domain.ResourceVehicle:
		if req.StartDate == nil || req.StartDate.IsZero() {
			return fmt.Errorf("%w: startDate is required for vehicle rental", ErrInvalidInput)
		}
		if req.EndDate == nil && req.Duration == nil {
			return fmt.Errorf("%w: either endDate or durationDays is required", ErrInvalidInput)
		}
		if req.EndDate != nil && req.Duration != nil {
			return fmt.Errorf("%w: endDate and durationDays are mutually exclusive", ErrInvalidInput)
		}
		if req.SlotID != nil {
			return fmt.Errorf("%w: slotId does not apply to vehicle rental", ErrInvalidInput)
		}

	case domain.ResourceTrip:
		if req.SlotID == nil || *req.SlotID <= 0 {
			return fmt.Errorf("%w: slotId is required for trip booking", ErrInvalidInput)
		}
		if req.StartDate != nil || req.EndDate != nil || req.Duration != nil {
			return fmt.Errorf("%w: trip bookings use a travel-date slot, not arbitrary dates", ErrInvalidInput)
		}
	}

	return nil
}
