package reservation

import (
	"github.com/rkoto/TanaTours-ReservationService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics: репозиторий работает одинаково
// поверх *sql.DB и обёртки с метриками, транзакции приходят через контекст
type DBExecutor = dbmetrics.DBExecutor
