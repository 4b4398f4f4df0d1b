package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rkoto/TanaTours-ReservationService/internal/availability"
	"github.com/rkoto/TanaTours-ReservationService/internal/bookingform"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	slotRepo "github.com/rkoto/TanaTours-ReservationService/internal/infra/storage/slot"
	catalogClient "github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// UseCase use case создания бронирования.
// Клиентские проверки доступности (check_availability) дают быструю предварительную
// валидацию; этот use case является финальным арбитром и повторяет проверку
// в сериализуемой транзакции.
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	catalogClient   CatalogClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, type=%s, resource=%d, party=%d",
		req.UserID, req.ResType, req.ResourceID, req.PartySize())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	switch req.ResType {
	case domain.ResourceVehicle:
		return uc.createVehicleReservation(ctx, req)
	case domain.ResourceTrip:
		return uc.createTripReservation(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, req.ResType)
	}
}

// createVehicleReservation создает бронирование аренды машины
func (uc *UseCase) createVehicleReservation(ctx context.Context, req *Request) (*Response, error) {
	// 2. Собираем период через машину состояний формы (включительный счёт дней)
	period, err := resolvePeriod(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: period resolution failed: %v", err)
		return nil, err
	}

	if period.Days() > domain.MaxRentalDays {
		uc.logger.Warn("CreateReservation: rental of %d days exceeds limit", period.Days())
		return nil, fmt.Errorf("%w: rental cannot exceed %d days", ErrInvalidInput, domain.MaxRentalDays)
	}

	// 3. Проверяем существование машины в каталоге.
	// При недоступности каталога не блокируем создание (fail open):
	// проверка периода в транзакции ниже остаётся финальным арбитром.
	_, err = uc.catalogClient.GetVehicleWithGracefulDegradation(ctx, req.ResourceID)
	switch {
	case err == nil:
		// Продолжаем
	case errors.Is(err, catalogClient.ErrVehicleNotFound):
		uc.logger.Warn("CreateReservation: vehicle id=%d not found", req.ResourceID)
		return nil, ErrResourceNotFound
	case errors.Is(err, catalogClient.ErrServiceDegraded):
		uc.logger.Warn("CreateReservation: catalog degraded, proceeding for vehicle=%d", req.ResourceID)
	default:
		uc.logger.Error("CreateReservation: catalog error for vehicle=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 4. Проверка пересечений и создание в сериализуемой транзакции.
	// GetBookedIntervals внутри транзакции блокирует строки (FOR UPDATE),
	// поэтому два одновременных бронирования одного периода не проскочат.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		intervals, err := uc.reservationRepo.GetBookedIntervals(txCtx, req.ResourceID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load booked intervals: %v", err)
			return fmt.Errorf("%w: failed to load booked intervals: %v", ErrInternal, err)
		}

		registry := availability.NewRegistry(req.ResourceID, intervals)
		if conflict, found := registry.FindConflict(period); found {
			uc.logger.Warn("CreateReservation: vehicle=%d period=%s conflicts with reservation=%d",
				req.ResourceID, period, conflict.ReservationID)
			return &PeriodConflictError{
				ReservationID: conflict.ReservationID,
				Period:        conflict.Range,
			}
		}

		created, err := uc.reservationRepo.Create(txCtx, uc.buildReservation(req, period, nil))
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created id=%d ref=%s vehicle=%d period=%s",
		result.ID, result.Reference, req.ResourceID, period)

	return fromDomain(result), nil
}

// createTripReservation создает бронирование круиза в выбранное окно
func (uc *UseCase) createTripReservation(ctx context.Context, req *Request) (*Response, error) {
	// 2. Проверяем существование круиза в каталоге (fail open при деградации)
	_, err := uc.catalogClient.GetTripWithGracefulDegradation(ctx, req.ResourceID)
	switch {
	case err == nil:
		// Продолжаем
	case errors.Is(err, catalogClient.ErrTripNotFound):
		uc.logger.Warn("CreateReservation: trip id=%d not found", req.ResourceID)
		return nil, ErrResourceNotFound
	case errors.Is(err, catalogClient.ErrServiceDegraded):
		uc.logger.Warn("CreateReservation: catalog degraded, proceeding for trip=%d", req.ResourceID)
	default:
		uc.logger.Error("CreateReservation: catalog error for trip=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get trip: %v", ErrInternal, err)
	}

	partySize := req.PartySize()
	var result *domain.Reservation

	// 3. Проверка мест и списание в сериализуемой транзакции.
	// GetByID блокирует строку окна (FOR UPDATE); TakePlaces атомарно
	// списывает места с защитой remaining_places >= n в WHERE.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		s, err := uc.slotRepo.GetByID(txCtx, *req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateReservation: failed to load slot id=%d: %v", *req.SlotID, err)
			return fmt.Errorf("%w: failed to load slot: %v", ErrInternal, err)
		}

		if s.TripID != req.ResourceID {
			uc.logger.Warn("CreateReservation: slot id=%d belongs to trip=%d, not trip=%d",
				s.ID, s.TripID, req.ResourceID)
			return ErrSlotNotFound
		}

		if capres := s.CheckCapacity(partySize); !capres.Allowed {
			uc.logger.Warn("CreateReservation: slot id=%d capacity exceeded, requested=%d available=%d",
				s.ID, partySize, capres.Available)
			return &CapacityError{Requested: partySize, Available: capres.Available}
		}

		if err := uc.slotRepo.TakePlaces(txCtx, s.ID, partySize); err != nil {
			if errors.Is(err, slotRepo.ErrNotEnoughPlaces) {
				// Гонка: места кончились между проверкой и списанием
				return &CapacityError{Requested: partySize, Available: s.RemainingPlaces}
			}
			uc.logger.Error("CreateReservation: failed to take places from slot id=%d: %v", s.ID, err)
			return fmt.Errorf("%w: failed to take places: %v", ErrInternal, err)
		}

		created, err := uc.reservationRepo.Create(txCtx, uc.buildReservation(req, s.Period, &s.ID))
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created id=%d ref=%s trip=%d slot=%d party=%d",
		result.ID, result.Reference, req.ResourceID, *req.SlotID, partySize)

	return fromDomain(result), nil
}

// buildReservation собирает доменную модель нового бронирования
func (uc *UseCase) buildReservation(req *Request, period domain.DateRange, slotID *int64) *domain.Reservation {
	res := &domain.Reservation{
		Reference:     uuid.NewString(),
		UserID:        req.UserID,
		ResType:       req.ResType,
		ResourceID:    req.ResourceID,
		SlotID:        slotID,
		PartySize:     req.PartySize(),
		Adults:        req.Adults,
		Children:      req.Children,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Preferences:   req.Preferences,
		Status:        domain.StatusPending,
	}
	if req.ResType == domain.ResourceVehicle {
		res.Period = period
	}
	return res
}

// resolvePeriod собирает период аренды из start + (end | duration)
func resolvePeriod(req *Request) (domain.DateRange, error) {
	state := bookingform.NewState()

	state, err := bookingform.Apply(state, bookingform.SetStart{Date: *req.StartDate})
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
