package create_reservation

import (
	"context"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetBookedIntervals(ctx context.Context, resourceID int64) ([]domain.BookedInterval, error)
}

// SlotRepository интерфейс репозитория окон путешествий
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CapacitySlot, error)
	TakePlaces(ctx context.Context, id int64, n int) error
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetVehicleWithGracefulDegradation(ctx context.Context, vehicleID int64) (*catalogservice.Vehicle, error)
	GetTripWithGracefulDegradation(ctx context.Context, tripID int64) (*catalogservice.Trip, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
