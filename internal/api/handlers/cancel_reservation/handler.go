package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rkoto/TanaTours-ReservationService/internal/api/handlers"
	"github.com/rkoto/TanaTours-ReservationService/internal/api/middleware"
	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	reservationsService "github.com/rkoto/TanaTours-ReservationService/internal/service/reservations"
	"github.com/rkoto/TanaTours-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReasonTooLong        = "причина отмены слишком длинная"
	msgReservationNotFound  = "бронирование не найдено"
	msgPermissionDenied     = "нет доступа к этому бронированию"
	msgCannotCancel         = "бронирование уже нельзя отменить"
	msgUnauthorized         = "требуется авторизация"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	Reason  string `json:"reason"`
	ByAdmin bool   `json:"byAdmin,omitempty"`
}

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Reason) > domain.MaxCancellationReason {
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	result, err := h.service.Cancel(r.Context(), &models.CancelReservationRequest{
		ReservationID: reservationID,
		UserID:        userID,
		Reason:        req.Reason,
		ByAdmin:       req.ByAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrPermissionDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, reservationsService.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
