package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/pkg/dbmetrics"
	"github.com/rkoto/TanaTours-ReservationService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"reference",
	"user_id",
	"res_type",
	"resource_id",
	"start_date",
	"end_date",
	"slot_id",
	"party_size",
	"adults",
	"children",
	"customer_name",
	"customer_email",
	"customer_phone",
	"preferences",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание с проверкой доступности периода должно идти в сериализуемой транзакции,
// иначе возможна гонка между двумя одновременными бронированиями одного периода.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var startDate, endDate interface{}
	if res.ResType == domain.ResourceVehicle {
		startDate = res.Period.Start
		endDate = res.Period.End
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"reference",
			"user_id",
			"res_type",
			"resource_id",
			"start_date",
			"end_date",
			"slot_id",
			"party_size",
			"adults",
			"children",
			"customer_name",
			"customer_email",
			"customer_phone",
			"preferences",
			"status",
		).
		Values(
			res.Reference,
			res.UserID,
			res.ResType,
			res.ResourceID,
			startDate,
			endDate,
			res.SlotID,
			res.PartySize,
			res.Adults,
			res.Children,
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerPhone,
			res.Preferences,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID получает список бронирований пользователя.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByResourceWithFilter получает бронирования ресурса с фильтрацией
// по периоду, статусу и включению неактивных бронирований.
//
// Примеры использования:
//
// 1. Активные бронирования машины (для проверки доступности):
//    filter := domain.ResourceReservationsFilter{ResType: domain.ResourceVehicle, ResourceID: 42}
//
// 2. Бронирования за период (back-office):
//    filter := domain.ResourceReservationsFilter{..., StartDate: &from, EndDate: &to}
//
// 3. Включая отменённые:
//    filter := domain.ResourceReservationsFilter{..., IncludeInactive: true}
func (r *Repository) GetByResourceWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"res_type":    filter.ResType,
			"resource_id": filter.ResourceID,
		})

	// Фильтрация по периоду: берём бронирования, чей диапазон пересекает запрошенный.
	// Для закрытых интервалов это start_date <= :end AND end_date >= :start.
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.StartDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Для проверки доступности нужны только удерживающие даты статусы
		blocking := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blocking})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, id ASC")

	// Внутри транзакции блокируем строки: проверка доступности и создание
	// должны видеть согласованное состояние (FOR UPDATE)
	if dbmetrics.IsInTransaction(ctx) && !filter.IncludeInactive {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetBookedIntervals возвращает занятые периоды машины для построения реестра доступности
func (r *Repository) GetBookedIntervals(ctx context.Context, resourceID int64) ([]domain.BookedInterval, error) {
	reservations, err := r.GetByResourceWithFilter(ctx, domain.ResourceReservationsFilter{
		ResType:    domain.ResourceVehicle,
		ResourceID: resourceID,
	})
	if err != nil {
		return nil, err
	}

	intervals := make([]domain.BookedInterval, 0, len(reservations))
	for _, res := range reservations {
		intervals = append(intervals, domain.BookedInterval{
			Range:         res.Period,
			ReservationID: res.ID,
			Status:        res.Status,
		})
	}

	return intervals, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservation сканирует одну строку в модель бронирования
func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var startDate, endDate, cancelledAt, createdAt, updatedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.Reference,
		&res.UserID,
		&res.ResType,
		&res.ResourceID,
		&startDate,
		&endDate,
		&res.SlotID,
		&res.PartySize,
		&res.Adults,
		&res.Children,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.Preferences,
		&res.Status,
		&res.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid && endDate.Valid {
		res.Period = domain.DateRange{
			Start: domain.Day(startDate.Time),
			End:   domain.Day(endDate.Time),
		}
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
