package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate == nil && req.Duration == nil {
		return fmt.Errorf("%w: either endDate or durationDays is required", ErrInvalidInput)
	}

	if req.EndDate != nil && req.Duration != nil {
		return fmt.Errorf("%w: endDate and durationDays are mutually exclusive", ErrInvalidInput)
	}

	return nil
}
