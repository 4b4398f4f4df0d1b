package get_unavailable_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/handlers"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	getUnavailableDates "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_unavailable_dates"
)

const (
	msgInvalidVehicleID = "некорректный ID машины"
	msgVehicleNotFound  = "машина не найдена"
)

// UnavailableDatesResponse HTTP response model
type UnavailableDatesResponse struct {
	VehicleID           int64    `json:"vehicleId"`
	Dates               []string `json:"dates"` // YYYY-MM-DD, хронологический порядок
	AvailabilityUnknown bool     `json:"availabilityUnknown,omitempty"`
}

type Handler struct {
	useCase GetUnavailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetUnavailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/unavailable-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicleID, err := strconv.ParseInt(vars["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/unavailable-dates - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getUnavailableDates.Request{VehicleID: vehicleID})
	if err != nil {
		switch {
		case errors.Is(err, getUnavailableDates.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{id}/unavailable-dates - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, getUnavailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vehicles/{id}/unavailable-dates - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]string, 0, len(result.Dates))
	for _, d := range result.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	handlers.RespondJSON(w, http.StatusOK, &UnavailableDatesResponse{
		VehicleID:           result.VehicleID,
		Dates:               dates,
		AvailabilityUnknown: result.AvailabilityUnknown,
	})
}
