package bookingform

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("bookingform: duration must be at least 1 day")

	// ErrInvalidPartySize возвращается, когда состав группы некорректен
	ErrInvalidPartySize = errors.New("bookingform: party size must be at least 1")

	// ErrIncomplete возвращается, когда из состояния формы ещё нельзя собрать период
	ErrIncomplete = errors.New("bookingform: start and end dates are not both set")
)
