package get_travel_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/handlers"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	getTravelDates "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_travel_dates"
)

const (
	msgInvalidTripID = "некорректный ID круиза"
	msgTripNotFound  = "круиз не найден"
)

// TravelDatesResponse HTTP response model
type TravelDatesResponse struct {
	TripID          int64          `json:"tripId"`
	Slots           []SlotResponse `json:"travelDates"`
	CapacityUnknown bool           `json:"capacityUnknown,omitempty"`
}

// SlotResponse окно путешествия с остатком мест
type SlotResponse struct {
	SlotID            int64  `json:"slotId"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	MaxPeople         int    `json:"maxPeople"`
	PlacesDisponibles int    `json:"placesDisponibles"`
	IsFull            bool   `json:"isFull"`
}

type Handler struct {
	useCase GetTravelDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetTravelDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trips/{tripId}/travel-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tripID, err := strconv.ParseInt(vars["tripId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trips/{id}/travel-dates - Invalid trip ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTripID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTravelDates.Request{TripID: tripID})
	if err != nil {
		switch {
		case errors.Is(err, getTravelDates.ErrTripNotFound):
			h.logger.Warn("GET /trips/{id}/travel-dates - Trip not found: trip_id=%d", tripID)
			handlers.RespondNotFound(w, msgTripNotFound)

		case errors.Is(err, getTravelDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /trips/{id}/travel-dates - Failed: trip_id=%d, error=%v", tripID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slots := make([]SlotResponse, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, SlotResponse{
			SlotID:            s.SlotID,
			StartDate:         s.Period.Start.Format(domain.DateFormat),
			EndDate:           s.Period.End.Format(domain.DateFormat),
			MaxPeople:         s.MaxPeople,
			PlacesDisponibles: s.RemainingPlaces,
			IsFull:            s.IsFull,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, &TravelDatesResponse{
		TripID:          result.TripID,
		Slots:           slots,
		CapacityUnknown: result.CapacityUnknown,
	})
}
