package get_travel_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	catalogClient "github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
)

// Request модель запроса на получение окон путешествий круиза
type Request struct {
	TripID int64
}

// Response список окон путешествий с остатком мест
type Response struct {
	TripID int64
	Slots  []Slot

	// CapacityUnknown выставляется, когда остаток мест взят из каталога,
	// а не из нашего хранилища (каталог недоступен или окна не синхронизированы)
	CapacityUnknown bool
}

// Slot окно путешествия для выбора на форме бронирования
type Slot struct {
	SlotID          int64
	Period          domain.DateRange
	MaxPeople       int
	RemainingPlaces int
	IsFull          bool
}

// UseCase use case получения окон путешествий круиза
type UseCase struct {
	slotRepo      SlotRepository
	catalogClient CatalogClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case получения окон путешествий.
// Остаток мест берётся из нашего хранилища (оно списывает места при
// бронировании); каталог подтверждает существование круиза и служит
// запасным источником окон.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TripID <= 0 {
		return nil, fmt.Errorf("%w: tripID must be positive", ErrInvalidInput)
	}

	trip, err := uc.catalogClient.GetTripWithGracefulDegradation(ctx, req.TripID)
	catalogDegraded := false
	switch {
	case err == nil:
		// Продолжаем
	case errors.Is(err, catalogClient.ErrTripNotFound):
		return nil, ErrTripNotFound
	case errors.Is(err, catalogClient.ErrServiceDegraded):
		uc.logger.Warn("GetTravelDates: catalog degraded for trip=%d", req.TripID)
		catalogDegraded = true
	default:
		uc.logger.Error("GetTravelDates: catalog error for trip=%d: %v", req.TripID, err)
		return nil, fmt.Errorf("%w: failed to get trip: %v", ErrInternal, err)
	}

	stored, err := uc.slotRepo.GetByTripID(ctx, req.TripID)
	if err != nil {
		uc.logger.Error("GetTravelDates: failed to load slots for trip=%d: %v", req.TripID, err)
		stored = nil
	}

	// Основной путь: окна из нашего хранилища
	if len(stored) > 0 {
		slots := make([]Slot, 0, len(stored))
		for _, s := range stored {
			slots = append(slots, Slot{
				SlotID:          s.ID,
				Period:          s.Period,
				MaxPeople:       s.MaxPeople,
				RemainingPlaces: s.RemainingPlaces,
				IsFull:          s.IsFull(),
			})
		}
		uc.logger.Info("GetTravelDates: trip=%d, %d slots from store", req.TripID, len(slots))
		return &Response{TripID: req.TripID, Slots: slots}, nil
	}

	// Запасной путь: окна из каталога, остаток мест условный
	if catalogDegraded || trip == nil {
		uc.logger.Warn("GetTravelDates: no slot data for trip=%d from any source", req.TripID)
		return &Response{TripID: req.TripID, Slots: []Slot{}, CapacityUnknown: true}, nil
	}

	slots := make([]Slot, 0, len(trip.TravelDates))
	for _, td := range trip.TravelDates {
		start, err := time.Parse(domain.DateFormat, td.StartDate)
		if err != nil {
			uc.logger.Warn("GetTravelDates: malformed startDate %q in catalog for trip=%d", td.StartDate, req.TripID)
			continue
		}
		end, err := time.Parse(domain.DateFormat, td.EndDate)
		if err != nil {
			uc.logger.Warn("GetTravelDates: malformed endDate %q in catalog for trip=%d", td.EndDate, req.TripID)
			continue
		}
		period, err := domain.NewDateRange(start, end)
		if err != nil {
			uc.logger.Warn("GetTravelDates: invalid range %s..%s in catalog for trip=%d", td.StartDate, td.EndDate, req.TripID)
			continue
		}
		slots = append(slots, Slot{
			SlotID:          td.ID,
			Period:          period,
			MaxPeople:       td.MaxPeople,
			RemainingPlaces: td.PlacesDisponibles,
			IsFull:          td.PlacesDisponibles <= 0,
		})
	}

	uc.logger.Info("GetTravelDates: trip=%d, %d slots from catalog fallback", req.TripID, len(slots))
	return &Response{TripID: req.TripID, Slots: slots, CapacityUnknown: true}, nil
}
