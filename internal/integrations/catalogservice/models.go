package catalogservice

// Vehicle модель машины из каталога
type Vehicle struct {
	ID                      int64        `json:"id"`
	Name                    string       `json:"name"`
	IsAvailable             bool         `json:"isAvailable"`
	ActiveReservationsCount int          `json:"activeReservationsCount"`
	BookedDates             []BookedDate `json:"bookedDates"`
}

// BookedDate занятый период машины по данным каталога
type BookedDate struct {
	ReservationID int64  `json:"reservationId"`
	StartDate     string `json:"startDate"` // YYYY-MM-DD
	EndDate       string `json:"endDate"`   // YYYY-MM-DD
	Status        string `json:"status"`
}

// Trip модель круиза из каталога
type Trip struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"` // JSON-encoded multilingual field, отображение вне нашей зоны
	TravelDates []TravelDate `json:"travelDates"`
}

// TravelDate фиксированное окно путешествия с лимитом мест
type TravelDate struct {
	ID                int64  `json:"id"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	MaxPeople         int    `json:"maxPeople"`
	PlacesDisponibles int    `json:"placesDisponibles"`
}

// ErrorResponse модель ошибки каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
