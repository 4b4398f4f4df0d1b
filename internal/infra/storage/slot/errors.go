package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда окно путешествия не найдено
	ErrSlotNotFound = errors.New("slot.repository: travel-date slot not found")

	// ErrNotEnoughPlaces возвращается, когда в окне не хватает мест
	ErrNotEnoughPlaces = errors.New("slot.repository: not enough places in slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
