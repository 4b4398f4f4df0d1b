package get_travel_dates

import (
	"context"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// SlotRepository интерфейс репозитория окон путешествий
type SlotRepository interface {
	GetByTripID(ctx context.Context, tripID int64) ([]*domain.CapacitySlot, error)
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetTripWithGracefulDegradation(ctx context.Context, tripID int64) (*catalogservice.Trip, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
