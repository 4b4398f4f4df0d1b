package get_unavailable_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/availability"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	catalogClient "github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// Request модель запроса на получение занятых дат
type Request struct {
	VehicleID int64
}

// Response список занятых дат для затенения календаря
type Response struct {
	VehicleID int64
	Dates     []time.Time // хронологический порядок, без дублей

	// AvailabilityUnknown выставляется при недоступности источников занятости:
	// календарь показывается пустым с предупреждением, а не заблокированным
	AvailabilityUnknown bool
}

// UseCase use case перечисления занятых дат машины
type UseCase struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// Execute выполняет use case получения занятых дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.VehicleID <= 0 {
		return nil, fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	unknown := false

	intervals, err := uc.reservationRepo.GetBookedIntervals(ctx, req.VehicleID)
	if err != nil {
		uc.logger.Error("GetUnavailableDates: failed to load booked intervals for vehicle=%d: %v", req.VehicleID, err)
		intervals = nil
		unknown = true
	}

	vehicle, err := uc.catalogClient.GetVehicleWithGracefulDegradation(ctx, req.VehicleID)
	switch {
	case err == nil:
		intervals = append(intervals, catalogIntervals(vehicle, uc.logger)...)
	case errors.Is(err, catalogClient.ErrVehicleNotFound):
		return nil, ErrVehicleNotFound
	case errors.Is(err, catalogClient.ErrServiceDegraded):
		uc.logger.Warn("GetUnavailableDates: catalog degraded for vehicle=%d", req.VehicleID)
		unknown = true
	default:
		uc.logger.Error("GetUnavailableDates: catalog error for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	registry := availability.NewRegistry(req.VehicleID, intervals)
	dates := registry.UnavailableDates()

	uc.logger.Info("GetUnavailableDates: vehicle=%d, %d dates blocked (unknown=%v)",
		req.VehicleID, len(dates), unknown)

	return &Response{
		VehicleID:           req.VehicleID,
		Dates:               dates,
		AvailabilityUnknown: unknown,
	}, nil
}

// catalogIntervals конвертирует занятые даты каталога в интервалы реестра
func catalogIntervals(vehicle *catalogClient.Vehicle, log Logger) []domain.BookedInterval {
	intervals := make([]domain.BookedInterval, 0, len(vehicle.BookedDates))
	for _, bd := range vehicle.BookedDates {
		start, err := time.Parse(domain.DateFormat, bd.StartDate)
		if err != nil {
			log.Warn("GetUnavailableDates: malformed startDate %q in catalog for vehicle=%d", bd.StartDate, vehicle.ID)
			continue
		}
		end, err := time.Parse(domain.DateFormat, bd.EndDate)
		if err != nil {
			log.Warn("GetUnavailableDates: malformed endDate %q in catalog for vehicle=%d", bd.EndDate, vehicle.ID)
			continue
		}
		r, err := domain.NewDateRange(start, end)
		if err != nil {
			log.Warn("GetUnavailableDates: invalid range %s..%s in catalog for vehicle=%d", bd.StartDate, bd.EndDate, vehicle.ID)
			continue
		}
		intervals = append(intervals, domain.BookedInterval{
			Range:         r,
			ReservationID: bd.ReservationID,
			Status:        domain.ReservationStatus(bd.Status),
		})
	}
	return intervals
}
