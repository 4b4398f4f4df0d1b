package create_reservation

import (
	"errors"
	"net/http"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/handlers"
	"github.com/rkoto/TanaTours-ReservationService/internal/api/middleware"
	"github.com/rkoto/TanaTours-ReservationService/internal/bookingform"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	createReservation "github.com/rkoto/TanaTours-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "длительность должна быть не меньше 1 дня"
	msgInvalidRange       = "дата окончания раньше даты начала"
	msgResourceNotFound   = "ресурс не найден"
	msgSlotNotFound       = "окно путешествия не найдено"
	msgPeriodConflict     = "выбранный период пересекается с существующим бронированием"
	msgCapacityExceeded   = "недостаточно мест в выбранном окне"
	msgUnauthorized       = "требуется авторизация"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, req, userID, err)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, ref=%s, user_id=%d",
		result.ID, result.Reference, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondError мапит ошибки use case на HTTP ответы.
// Конфликт периода и нехватка мест несут детали для пользователя:
// пересекающийся период и остаток мест соответственно.
func (h *Handler) respondError(w http.ResponseWriter, req CreateReservationRequest, userID int64, err error) {
	var conflictErr *createReservation.PeriodConflictError
	var capacityErr *createReservation.CapacityError

	switch {
	case errors.As(err, &conflictErr):
		h.logger.Warn("POST /reservations - Period conflict: user_id=%d, resource_id=%d, busy=%s",
			userID, req.ResourceID, conflictErr.Period)
		handlers.RespondJSON(w, http.StatusConflict, &ConflictResponse{
			Code:          http.StatusConflict,
			Message:       msgPeriodConflict,
			ReservationID: conflictErr.ReservationID,
			StartDate:     conflictErr.Period.Start.Format(domain.DateFormat),
			EndDate:       conflictErr.Period.End.Format(domain.DateFormat),
		})

	case errors.As(err, &capacityErr):
		h.logger.Warn("POST /reservations - Capacity exceeded: user_id=%d, resource_id=%d, available=%d",
			userID, req.ResourceID, capacityErr.Available)
		available := capacityErr.Available
		handlers.RespondJSON(w, http.StatusConflict, &ConflictResponse{
			Code:      http.StatusConflict,
			Message:   msgCapacityExceeded,
			Available: &available,
		})

	case errors.Is(err, createReservation.ErrResourceNotFound):
		h.logger.Warn("POST /reservations - Resource not found: user_id=%d, resource_id=%d", userID, req.ResourceID)
		handlers.RespondNotFound(w, msgResourceNotFound)

	case errors.Is(err, createReservation.ErrSlotNotFound):
		h.logger.Warn("POST /reservations - Slot not found: user_id=%d, resource_id=%d", userID, req.ResourceID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, bookingform.ErrInvalidDuration):
		handlers.RespondBadRequest(w, msgInvalidDuration)

	case errors.Is(err, domain.ErrInvalidRange):
		handlers.RespondBadRequest(w, msgInvalidRange)

	case errors.Is(err, createReservation.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, resource_id=%d, error=%v",
			userID, req.ResourceID, err)
		handlers.RespondInternalError(w)
	}
}
