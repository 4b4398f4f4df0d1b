package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/handlers"
	"github.com/rkoto/TanaTours-ReservationService/internal/bookingform"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	checkAvailability "github.com/rkoto/TanaTours-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidVehicleID = "некорректный ID машины"
	msgMissingStartDate = "параметр startDate обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "длительность должна быть не меньше 1 дня"
	msgInvalidRange     = "дата окончания раньше даты начала"
	msgMissingEnd       = "нужен endDate либо durationDays"
	msgVehicleNotFound  = "машина не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/availability
// Query params: startDate (required, YYYY-MM-DD), endDate или durationDays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicleID, err := strconv.ParseInt(vars["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/availability - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	query := r.URL.Query()

	startDateStr := query.Get("startDate")
	if startDateStr == "" {
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/availability - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &checkAvailability.Request{
		VehicleID: vehicleID,
		StartDate: startDate,
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /vehicles/{id}/availability - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	} else if durationStr := query.Get("durationDays"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /vehicles/{id}/availability - Invalid durationDays: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.Duration = &duration
	} else {
		handlers.RespondBadRequest(w, msgMissingEnd)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{id}/availability - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, bookingform.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vehicles/{id}/availability - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
