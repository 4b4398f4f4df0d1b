package create_reservation

import (
	"time"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64
	ResType    domain.ResourceType
	ResourceID int64

	// Аренда машины: start + (end | duration), день начала включителен
	StartDate *time.Time
	EndDate   *time.Time
	Duration  *int

	// Круиз: выбранное окно путешествия
	SlotID *int64

	Adults   int
	Children int

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Preferences   *string
}

// PartySize возвращает общий размер группы
func (r *Request) PartySize() int {
	return r.Adults + r.Children
}

// Response модель созданного бронирования
type Response struct {
	ID         int64
	Reference  string
	UserID     int64
	ResType    domain.ResourceType
	ResourceID int64

	Period *domain.DateRange // заполнен для аренды машины
	SlotID *int64            // заполнен для круиза

	PartySize int
	Adults    int
	Children  int

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Preferences   *string

	Status    domain.ReservationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменную модель в ответ use case
func fromDomain(res *domain.Reservation) *Response {
	resp := &Response{
		ID:            res.ID,
		Reference:     res.Reference,
		UserID:        res.UserID,
		ResType:       res.ResType,
		ResourceID:    res.ResourceID,
		SlotID:        res.SlotID,
		PartySize:     res.PartySize,
		Adults:        res.Adults,
		Children:      res.Children,
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		CustomerPhone: res.CustomerPhone,
		Preferences:   res.Preferences,
		Status:        res.Status,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
	if res.ResType == domain.ResourceVehicle {
		period := res.Period
		resp.Period = &period
	}
	return resp
}
