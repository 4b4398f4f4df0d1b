package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/availability"
	"github.com/rkoto/TanaTours-ReservationService/internal/bookingform"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	catalogClient "github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// UseCase use case проверки доступности периода аренды машины
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

// Execute выполняет use case проверки доступности.
// Это быстрая предварительная проверка для формы бронирования; финальным
// арбитром остаётся создание бронирования в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: user=%d, vehicle=%d, start=%s",
		req.UserID, req.VehicleID, req.StartDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим start + (end | duration) к периоду через машину состояний формы.
	// Третий параметр всегда выводится из двух заданных, день начала включителен.
	period, err := resolvePeriod(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: period resolution failed: %v", err)
		return nil, err
	}

	unknown := false

	// 3. Занятые периоды из нашего хранилища
	intervals, err := uc.reservationRepo.GetBookedIntervals(ctx, req.VehicleID)
	if err != nil {
		// Fail open: при недоступности хранилища не блокируем пользователя,
		// а помечаем результат как неизвестный
		uc.logger.Error("CheckAvailability: failed to load booked intervals for vehicle=%d: %v", req.VehicleID, err)
		intervals = nil
		unknown = true
	}

	// 4. Занятые периоды из каталога (бронирования внешних каналов)
	vehicle, err := uc.catalogClient.GetVehicleWithGracefulDegradation(ctx, req.VehicleID)
	switch {
	case err == nil:
		intervals = append(intervals, catalogIntervals(vehicle, uc.logger)...)
	case errors.Is(err, catalogClient.ErrVehicleNotFound):
		return nil, ErrVehicleNotFound
	case errors.Is(err, catalogClient.ErrServiceDegraded):
		uc.logger.Warn("CheckAvailability: catalog degraded for vehicle=%d, availability unknown", req.VehicleID)
		unknown = true
	default:
		uc.logger.Error("CheckAvailability: catalog error for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 5. Проверяем период против реестра занятости
	registry := availability.NewRegistry(req.VehicleID, intervals)

	resp := &Response{
		VehicleID:           req.VehicleID,
		Period:              period,
		Available:           true,
		AvailabilityUnknown: unknown,
	}

	if conflict, found := registry.FindConflict(period); found {
		resp.Available = false
		resp.Conflict = &Conflict{
			ReservationID: conflict.ReservationID,
			Period:        conflict.Range,
		}
		uc.logger.Info("CheckAvailability: vehicle=%d period=%s conflicts with reservation=%d (%s)",
			req.VehicleID, period, conflict.ReservationID, conflict.Range)
	} else {
		uc.logger.Info("CheckAvailability: vehicle=%d period=%s available (unknown=%v)",
			req.VehicleID, period, unknown)
	}

	return resp, nil
}

// resolvePeriod собирает период из start + (end | duration) через bookingform
func resolvePeriod(req *Request) (domain.DateRange, error) {
	state := bookingform.NewState()

	state, err := bookingform.Apply(state, bookingform.SetStart{Date: req.StartDate})
	if err != nil {
		return domain.DateRange{}, err
	}

	if req.EndDate != nil {
		state, err = bookingform.Apply(state, bookingform.SetEnd{Date: *req.EndDate})
	} else {
		state, err = bookingform.Apply(state, bookingform.SetDuration{Days: *req.Duration})
	}
	if err != nil {
		return domain.DateRange{}, err
	}

	return state.CandidateRange()
}

// catalogIntervals конвертирует занятые даты каталога в интервалы реестра.
// Битые записи каталога пропускаются с предупреждением, а не валят проверку.
func catalogIntervals(vehicle *catalogClient.Vehicle, log Logger) []domain.BookedInterval {
	intervals := make([]domain.BookedInterval, 0, len(vehicle.BookedDates))
	for _, bd := range vehicle.BookedDates {
		start, err := time.Parse(domain.DateFormat, bd.StartDate)
		if err != nil {
			log.Warn("CheckAvailability: malformed startDate %q in catalog for vehicle=%d", bd.StartDate, vehicle.ID)
			continue
		}
		end, err := time.Parse(domain.DateFormat, bd.EndDate)
		if err != nil {
			log.Warn("CheckAvailability: malformed endDate %q in catalog for vehicle=%d", bd.EndDate, vehicle.ID)
			continue
		}
		r, err := domain.NewDateRange(start, end)
		if err != nil {
			log.Warn("CheckAvailability: invalid range %s..%s in catalog for vehicle=%d", bd.StartDate, bd.EndDate, vehicle.ID)
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
