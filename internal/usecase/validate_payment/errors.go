package validate_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("validate_payment: booking %w", domain.ErrNotFound)

	// ErrBookingCancelled возвращается при попытке принять платеж по отмененному бронированию
	ErrBookingCancelled = fmt.Errorf("validate_payment: booking is cancelled: %w", domain.ErrConflict)

	// ErrDuplicateReference возвращается, если референс уже записан для бронирования
	ErrDuplicateReference = fmt.Errorf("validate_payment: reference number already recorded: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_payment: internal error")
)
