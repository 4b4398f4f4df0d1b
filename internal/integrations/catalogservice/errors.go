package catalogservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда машина не найдена в каталоге
	ErrVehicleNotFound = errors.New("catalogservice client: vehicle not found")

	// ErrTripNotFound возвращается, когда круиз не найден в каталоге
	ErrTripNotFound = errors.New("catalogservice client: trip not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrStaleResponse возвращается, когда каталог ответил записью другого ресурса.
	// Такой ответ отбрасывается, иначе доступность показывалась бы для чужого ресурса.
	ErrStaleResponse = errors.New("catalogservice client: response resource id mismatch")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Каталог недоступен: доступность считается неизвестной (fail open), а не занятой.
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
