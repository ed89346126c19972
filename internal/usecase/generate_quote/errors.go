package generate_quote

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("generate_quote: booking %w", domain.ErrNotFound)

	// ErrTotalBelowPaid возвращается, если новая сумма меньше уже оплаченной
	ErrTotalBelowPaid = fmt.Errorf("generate_quote: quoted total is below the amount already paid: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_quote: internal error")
)
