package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking %w", domain.ErrNotFound)

	// ErrNothingToUpdate возвращается, если запрос на изменение не содержит полей
	ErrNothingToUpdate = fmt.Errorf("bookings.service: nothing to update: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
