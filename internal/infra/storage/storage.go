package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Коды ошибок PostgreSQL
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"

	pqClassConnection   = "08"
	pqClassTxRollback   = "40" // serialization_failure, deadlock_detected
	pqClassOperatorStop = "57" // admin_shutdown, cannot_connect_now
)

// WithTimeout ограничивает время одного обращения к БД
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// NewError оборачивает ошибку драйвера в *domain.StorageError
// sentinel - ошибка пакета репозитория (ErrExecQuery, ErrScanRow)
func NewError(sentinel error, op, entityID string, err error) error {
	return &domain.StorageError{
		Op:        op,
		EntityID:  entityID,
		Retryable: IsRetryable(err),
		Err:       fmt.Errorf("%w: %v", sentinel, err),
	}
}

// IsRetryable ошибки соединения, таймауты и откаты сериализуемых транзакций
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case pqClassConnection, pqClassTxRollback, pqClassOperatorStop:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation нарушение уникального ограничения
// Если constraint не пустой, проверяется и имя ограничения
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}
