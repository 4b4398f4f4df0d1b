package create_reservation

import (
	"fmt"
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	createReservation "github.com/rkoto/TanaTours-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResType    string `json:"resType"` // "vehicle" | "trip"
	ResourceID int64  `json:"resourceId"`

	StartDate    *string `json:"startDate,omitempty"` // "2025-08-10"
	EndDate      *string `json:"endDate,omitempty"`
	DurationDays *int    `json:"durationDays,omitempty"`
	SlotID       *int64  `json:"slotId,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Preferences   *string `json:"preferences,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	UserID     int64  `json:"userId"`
	ResType    string `json:"resType"`
	ResourceID int64  `json:"resourceId"`

	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	DurationDays *int    `json:"durationDays,omitempty"`
	SlotID       *int64  `json:"slotId,omitempty"`

	PartySize int `json:"partySize"`
	Adults    int `json:"adults"`
	Children  int `json:"children"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Preferences   *string `json:"preferences,omitempty"`

	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 при пересечении периода
type ConflictResponse struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	ReservationID int64  `json:"reservationId,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Available     *int   `json:"placesDisponibles,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	req := &createReservation.Request{
		UserID:        userID,
		ResType:       domain.ResourceType(r.ResType),
		ResourceID:    r.ResourceID,
		Duration:      r.DurationDays,
		SlotID:        r.SlotID,
		Adults:        r.Adults,
		Children:      r.Children,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Preferences:   r.Preferences,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parse startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parse endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		UserID:        resp.UserID,
		ResType:       string(resp.ResType),
		ResourceID:    resp.ResourceID,
		SlotID:        resp.SlotID,
		PartySize:     resp.PartySize,
		Adults:        resp.Adults,
		Children:      resp.Children,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Preferences:   resp.Preferences,
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.Period != nil {
		start := resp.Period.Start.Format(domain.DateFormat)
		end := resp.Period.End.Format(domain.DateFormat)
		days := resp.Period.Days()
		out.StartDate = &start
		out.EndDate = &end
		out.DurationDays = &days
	}

	return out
}
