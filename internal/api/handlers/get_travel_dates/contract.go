package get_travel_dates

import (
	"context"

	getTravelDates "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_travel_dates"
)

type GetTravelDatesUseCase interface {
	Execute(ctx context.Context, req *getTravelDates.Request) (*getTravelDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
