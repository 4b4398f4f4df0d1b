package models

import (
	"fmt"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// GetUserReservationsRequest запрос истории бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64
	Status *string
}

// GetResourceReservationsRequest запрос бронирований ресурса (back-office)
type GetResourceReservationsRequest struct {
	ResType         string
	ResourceID      int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetResourceReservationsRequest) ToDomainFilter() (domain.ResourceReservationsFilter, error) {
	resType, err := ToDomainResourceType(r.ResType)
	if err != nil {
		return domain.ResourceReservationsFilter{}, err
	}

	filter := domain.ResourceReservationsFilter{
		ResType:         resType,
		ResourceID:      r.ResourceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return domain.ResourceReservationsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	ReservationID int64
	UserID        int64
	Reason        string
	ByAdmin       bool
}

// ReservationResponse модель бронирования для вызывающего слоя
type ReservationResponse struct {
	ID         int64
	Reference  string
	UserID     int64
	ResType    string
	ResourceID int64

	StartDate *string
	EndDate   *string
	SlotID    *int64

	PartySize int
	Adults    int
	Children  int

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Preferences   *string

	Status             string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse
	Total        int
}

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 res.ID,
		Reference:          res.Reference,
		UserID:             res.UserID,
		ResType:            string(res.ResType),
		ResourceID:         res.ResourceID,
		SlotID:             res.SlotID,
		PartySize:          res.PartySize,
		Adults:             res.Adults,
		Children:           res.Children,
		CustomerName:       res.CustomerName,
		CustomerEmail:      res.CustomerEmail,
		CustomerPhone:      res.CustomerPhone,
		Preferences:        res.Preferences,
		Status:             string(res.Status),
		CancellationReason: res.CancellationReason,
		CancelledAt:        res.CancelledAt,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}

	if res.ResType == domain.ResourceVehicle {
		start := res.Period.Start.Format(domain.DateFormat)
		end := res.Period.End.Format(domain.DateFormat)
		resp.StartDate = &start
		resp.EndDate = &end
	}

	return resp
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}

// ToDomainReservationStatus конвертирует строку в статус бронирования
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelledByClient, domain.StatusCancelledByAdmin:
		return domain.ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// ToDomainResourceType конвертирует строку в тип ресурса
func ToDomainResourceType(s string) (domain.ResourceType, error) {
	switch domain.ResourceType(s) {
	case domain.ResourceVehicle, domain.ResourceTrip:
		return domain.ResourceType(s), nil
	default:
		return "", fmt.Errorf("unknown resource type %q", s)
	}
}
