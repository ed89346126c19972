package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/infra/storage"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
	"github.com/m04kA/EventsBookingService/pkg/psqlbuilder"
)

const referenceConstraint = "payments_booking_reference_key"

// Repository репозиторий для работы с платежами
type Repository struct {
	db           DBExecutor
	queryTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor, queryTimeout time.Duration) *Repository {
	return &Repository{db: db, queryTimeout: queryTimeout}
}

// Create записывает платеж и возвращает его с присвоенным ID
func (r *Repository) Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)
	row := MapPaymentToRow(payment)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_id",
			"amount",
			"payment_type",
			"payment_method",
			"reference_number",
			"transaction_id",
			"paid_at",
			"paid_by",
			"validated_by",
			"notes",
		).
		Values(
			row.BookingID,
			row.Amount,
			row.PaymentType,
			row.PaymentMethod,
			row.ReferenceNumber,
			row.TransactionID,
			row.PaidAt,
			row.PaidBy,
			row.ValidatedBy,
			row.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		switch {
		case storage.IsUniqueViolation(err, referenceConstraint):
			return nil, fmt.Errorf("%w: Create - booking_id=%s", ErrDuplicateReference, payment.BookingID)
		case storage.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: Create - booking_id=%s", ErrBookingNotFound, payment.BookingID)
		}
		return nil, storage.NewError(ErrExecQuery, "payment.Create", payment.BookingID, err)
	}

	return MapRowToPayment(row), nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PaymentRecord, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row PaymentRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, storage.NewError(ErrScanRow, "payment.GetByID", strconv.FormatInt(id, 10), err)
	}

	return MapRowToPayment(&row), nil
}

// List получает платежи бронирования (или все платежи, если bookingID == nil)
// Порядок: paid_at DESC, затем id DESC
func (r *Repository) List(ctx context.Context, bookingID *string) ([]*domain.PaymentRecord, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(tableName)
	if bookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *bookingID})
	}

	return r.query(ctx, "payment.List", selectBuilder)
}

// ListByBookings получает платежи нескольких бронирований, сгруппированные по booking_id
func (r *Repository) ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]*domain.PaymentRecord, error) {
	grouped := make(map[string][]*domain.PaymentRecord, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return grouped, nil
	}

	payments, err := r.query(ctx, "payment.ListByBookings",
		psqlbuilder.Select(columns...).
			From(tableName).
			Where(squirrel.Eq{"booking_id": bookingIDs}),
	)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		grouped[p.BookingID] = append(grouped[p.BookingID], p)
	}
	return grouped, nil
}

// ExistsByReference проверяет, записан ли уже референс для бронирования
func (r *Repository) ExistsByReference(ctx context.Context, bookingID, reference string) (bool, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableName).
		Where(squirrel.Eq{"booking_id": bookingID, "reference_number": reference}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, storage.NewError(ErrScanRow, "payment.ExistsByReference", bookingID, err)
	}

	return exists, nil
}

// Delete удаляет платеж, принадлежащий бронированию
func (r *Repository) Delete(ctx context.Context, bookingID string, id int64) error {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return storage.NewError(ErrExecQuery, "payment.Delete", strconv.FormatInt(id, 10), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storage.NewError(ErrExecQuery, "payment.Delete", strconv.FormatInt(id, 10), err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.PaymentRecord, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.OrderBy("paid_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.NewError(ErrExecQuery, op, "", err)
	}
	defer rows.Close()

	payments := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		var row PaymentRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, storage.NewError(ErrScanRow, op, "", err)
		}
		payments = append(payments, MapRowToPayment(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, storage.NewError(ErrScanRow, op, "", err)
	}

	return payments, nil
}
