package check_availability

import (
	"context"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetBookedIntervals возвращает занятые периоды машины
	GetBookedIntervals(ctx context.Context, resourceID int64) ([]domain.BookedInterval, error)
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetVehicleWithGracefulDegradation(ctx context.Context, vehicleID int64) (*catalogservice.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
