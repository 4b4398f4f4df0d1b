package get_resource_reservations

import (
	"context"

	"github.com/rkoto/TanaTours-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
