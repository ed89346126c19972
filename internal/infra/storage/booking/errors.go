package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: booking %w", domain.ErrNotFound)

	// ErrDuplicateID возвращается при коллизии сгенерированного ID бронирования
	ErrDuplicateID = fmt.Errorf("booking.repository: duplicate booking id: %w", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatus возвращается, если в БД записан неизвестный статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")
)
