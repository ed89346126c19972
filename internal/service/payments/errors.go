package payments

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = fmt.Errorf("payments.service: payment %w", domain.ErrNotFound)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("payments.service: booking %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)
