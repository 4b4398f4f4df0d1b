package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	reservationRepo "github.com/rkoto/TanaTours-ReservationService/internal/infra/storage/reservation"
	"github.com/rkoto/TanaTours-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только собственные бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrPermissionDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(list), req.UserID)
	return models.FromDomainReservationList(list), nil
}

// GetResourceReservations получает бронирования ресурса для back-office с
// фильтрацией по периоду, статусу и включению неактивных бронирований
func (s *Service) GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetResourceReservations: type=%s, resource=%d", req.ResType, req.ResourceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceReservations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceReservations: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceReservations: fetched %d reservations for resource=%d", len(list), req.ResourceID)
	return models.FromDomainReservationList(list), nil
}

// Cancel отменяет бронирование.
// Для круизов возвращает списанные места в окно путешествия; отмена и возврат
// мест идут в одной транзакции, чтобы места не потерялись при сбое между ними.
func (s *Service) Cancel(ctx context.Context, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: reservation id=%d by user=%d (admin=%v)", req.ReservationID, req.UserID, req.ByAdmin)

	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.ByAdmin && res.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, req.ReservationID)
		return nil, ErrPermissionDenied
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status %s cannot be cancelled", res.ID, res.Status)
		return nil, ErrCannotCancel
	}

	status := domain.StatusCancelledByClient
	if req.ByAdmin {
		status = domain.StatusCancelledByAdmin
	}

	wasBlocking := res.Blocks()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.Cancel(txCtx, res.ID, status, req.Reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Возвращаем места только если бронирование их удерживало
		if res.ResType == domain.ResourceTrip && res.SlotID != nil && wasBlocking {
			if err := s.slotRepo.ReturnPlaces(txCtx, *res.SlotID, res.PartySize); err != nil {
				return fmt.Errorf("%w: Cancel - return places: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: transaction failed for reservation id=%d: %v", res.ID, err)
		return nil, err
	}

	res.Status = status
	res.CancellationReason = &req.Reason

	s.logger.Info("Cancel: reservation id=%d cancelled with status=%s", res.ID, status)
	return models.FromDomainReservation(res), nil
}
