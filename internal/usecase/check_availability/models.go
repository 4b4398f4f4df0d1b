package check_availability

import (
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// Request модель запроса на проверку доступности периода
type Request struct {
	UserID    int64      // ID пользователя (для логирования, не влияет на результат)
	VehicleID int64      // ID машины
	StartDate time.Time  // Начало периода
	EndDate   *time.Time // Конец периода (либо EndDate, либо DurationDays)
	Duration  *int       // Длительность в днях, включая день начала
}

// Response модель ответа проверки доступности
type Response struct {
	VehicleID int64
	Period    domain.DateRange
	Available bool

	// AvailabilityUnknown выставляется, когда источники занятости недоступны:
	// период условно разрешён, но клиенту показывается предупреждение
	AvailabilityUnknown bool

	// Conflict заполняется, когда период пересекается с активным бронированием
	Conflict *Conflict
}

// Conflict пересечение с существующим бронированием
type Conflict struct {
	ReservationID int64
	Period        domain.DateRange
}
