package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/infra/storage"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
	"github.com/m04kA/EventsBookingService/pkg/psqlbuilder"
)

const primaryKeyConstraint = "bookings_pkey"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db           DBExecutor
	queryTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, queryTimeout time.Duration) *Repository {
	return &Repository{db: db, queryTimeout: queryTimeout}
}

// Create создает новое бронирование
// При коллизии ID возвращает ErrDuplicateID, чтобы вызывающий код сгенерировал новый
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)
	row := MapBookingToRow(booking)

	values := row.mutableValues()
	values["id"] = row.ID

	query, args, err := psqlbuilder.Insert(tableName).
		SetMap(values).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err, primaryKeyConstraint) {
			return nil, fmt.Errorf("%w: Create - id=%s", ErrDuplicateID, booking.ID)
		}
		return nil, storage.NewError(ErrExecQuery, "booking.Create", booking.ID, err)
	}

	return MapRowToBooking(row), nil
}

// GetByID получает бронирование по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// GetForUpdate получает бронирование и блокирует строку до конца транзакции
// Вызывается внутри txmanager: вне транзакции блокировка снимается сразу
func (r *Repository) GetForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetForUpdate", id, true)
}

func (r *Repository) getOne(ctx context.Context, op, id string, lock bool) (*domain.Booking, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var row BookingRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storage.NewError(ErrScanRow, "booking."+op, id, err)
	}

	if !domain.BookingStatus(row.Status).IsValid() {
		return nil, fmt.Errorf("%w: %s - id=%s status=%q", ErrInvalidStatus, op, id, row.Status)
	}

	return MapRowToBooking(&row), nil
}

// List получает бронирования по фильтру, упорядоченные по дате мероприятия
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.Archived != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"archived": *filter.Archived})
	}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"customer_email": pattern},
			squirrel.ILike{"id": pattern},
		})
	}

	if filter.EventDateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": *filter.EventDateFrom})
	}
	if filter.EventDateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": *filter.EventDateTo})
	}

	selectBuilder = selectBuilder.OrderBy("event_date ASC", "created_at DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.NewError(ErrExecQuery, "booking.List", "", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет все изменяемые поля бронирования
// Last-write-wins: версия строки не проверяется
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)
	row := MapBookingToRow(booking)

	query, args, err := psqlbuilder.Update(tableName).
		SetMap(row.mutableValues()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": row.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storage.NewError(ErrExecQuery, "booking.Update", booking.ID, err)
	}

	return MapRowToBooking(row), nil
}

// Delete удаляет бронирование вместе с платежами (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return storage.NewError(ErrExecQuery, "booking.Delete", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storage.NewError(ErrExecQuery, "booking.Delete", id, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var row BookingRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, storage.NewError(ErrScanRow, "booking.scanBookings", "", err)
		}
		bookings = append(bookings, MapRowToBooking(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, storage.NewError(ErrScanRow, "booking.scanBookings", "", err)
	}

	return bookings, nil
}

// escapeLike экранирует спецсимволы LIKE в пользовательском вводе
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
