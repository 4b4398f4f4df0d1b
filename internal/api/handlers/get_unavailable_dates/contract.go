package get_unavailable_dates

import (
	"context"

	getUnavailableDates "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_unavailable_dates"
)

type GetUnavailableDatesUseCase interface {
	Execute(ctx context.Context, req *getUnavailableDates.Request) (*getUnavailableDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
