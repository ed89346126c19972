package add_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("add_payment: booking %w", domain.ErrNotFound)

	// ErrBookingCancelled возвращается при попытке записать платеж по отмененному бронированию
	ErrBookingCancelled = fmt.Errorf("add_payment: booking is cancelled: %w", domain.ErrConflict)

	// ErrDuplicateReference возвращается, если референс уже записан для бронирования
	ErrDuplicateReference = fmt.Errorf("add_payment: reference number already recorded: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_payment: internal error")
)
