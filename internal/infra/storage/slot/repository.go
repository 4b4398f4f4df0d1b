package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rkoto/TanaTours-ReservationService/internal/domain"
	"github.com/rkoto/TanaTours-ReservationService/pkg/dbmetrics"
	"github.com/rkoto/TanaTours-ReservationService/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для *sql.DB и обёрток с метриками
type DBExecutor = dbmetrics.DBExecutor

var slotColumns = []string{
	"id",
	"trip_id",
	"start_date",
	"end_date",
	"max_people",
	"remaining_places",
}

// Repository репозиторий окон путешествий (capacity slots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон путешествий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает окно путешествия по ID.
// Внутри транзакции блокирует строку (FOR UPDATE): проверка мест и их
// списание должны видеть согласованный остаток.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("travel_date_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := scanSlot(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByTripID получает все окна путешествий круиза в хронологическом порядке
func (r *Repository) GetByTripID(ctx context.Context, tripID int64) ([]*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("travel_date_slots").
		Where(squirrel.Eq{"trip_id": tripID}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTripID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTripID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.CapacitySlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTripID - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTripID - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// TakePlaces списывает места из окна. Условие remaining_places >= n в WHERE
// делает списание атомарным: при нехватке мест запрос не затронет ни одной
// строки и вернётся ErrNotEnoughPlaces.
func (r *Repository) TakePlaces(ctx context.Context, id int64, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("travel_date_slots").
		Set("remaining_places", squirrel.Expr("remaining_places - ?", n)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"remaining_places": n}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TakePlaces - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TakePlaces - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TakePlaces - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotEnoughPlaces
	}

	return nil
}

// ReturnPlaces возвращает места в окно при отмене бронирования.
// LEAST не даёт остатку превысить max_people.
func (r *Repository) ReturnPlaces(ctx context.Context, id int64, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("travel_date_slots").
		Set("remaining_places", squirrel.Expr("LEAST(remaining_places + ?, max_people)", n)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReturnPlaces - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReturnPlaces - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReturnPlaces - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlot сканирует одну строку в модель окна путешествия
func scanSlot(scan func(dest ...interface{}) error) (*domain.CapacitySlot, error) {
	var s domain.CapacitySlot
	var startDate, endDate sql.NullTime

	err := scan(
		&s.ID,
		&s.TripID,
		&startDate,
		&endDate,
		&s.MaxPeople,
		&s.RemainingPlaces,
	)
	if err != nil {
		return nil, err
	}

	s.Period = domain.DateRange{
		Start: domain.Day(startDate.Time),
		End:   domain.Day(endDate.Time),
	}

	return &s, nil
}
