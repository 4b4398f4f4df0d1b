package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrPermissionDenied возвращается при попытке доступа к чужому бронированию
	ErrPermissionDenied = errors.New("reservations.service: permission denied")

	// ErrCannotCancel возвращается, когда бронирование уже нельзя отменить
	ErrCannotCancel = errors.New("reservations.service: reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
