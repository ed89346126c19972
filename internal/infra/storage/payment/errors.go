package payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = fmt.Errorf("payment.repository: payment %w", domain.ErrNotFound)

	// ErrBookingNotFound возвращается, если платеж ссылается на несуществующее бронирование
	ErrBookingNotFound = fmt.Errorf("payment.repository: booking %w", domain.ErrNotFound)

	// ErrDuplicateReference возвращается, если номер референса уже записан для бронирования
	ErrDuplicateReference = fmt.Errorf("payment.repository: reference number already recorded: %w", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
