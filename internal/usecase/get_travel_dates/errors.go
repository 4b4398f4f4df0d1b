package get_travel_dates

import "errors"

var (
	// ErrTripNotFound возвращается, когда круиз не найден
	ErrTripNotFound = errors.New("trip not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
