package create_reservation

import (
	"errors"
	"fmt"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

var (
	// ErrResourceNotFound возвращается, когда машина или круиз не найдены
	ErrResourceNotFound = errors.New("resource not found")

	// ErrSlotNotFound возвращается, когда окно путешествия не найдено
	ErrSlotNotFound = errors.New("travel-date slot not found")

	// ErrPeriodConflict возвращается, когда период пересекается с активным бронированием
	ErrPeriodConflict = errors.New("period conflicts with an existing reservation")

	// ErrCapacityExceeded возвращается, когда в окне не хватает мест
	ErrCapacityExceeded = errors.New("insufficient capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// PeriodConflictError несёт пересекающийся период, чтобы показать его
// пользователю для выбора других дат. errors.Is с ErrPeriodConflict работает.
type PeriodConflictError struct {
	ReservationID int64
	Period        domain.DateRange
}

func (e *PeriodConflictError) Error() string {
	return fmt.Sprintf("%v: %s", ErrPeriodConflict, e.Period)
}

func (e *PeriodConflictError) Is(target error) bool {
	return target == ErrPeriodConflict
}

// CapacityError несёт остаток мест, чтобы показать его пользователю.
// errors.Is с ErrCapacityExceeded работает.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: requested=%d available=%d", ErrCapacityExceeded, e.Requested, e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
