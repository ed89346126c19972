package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrEventDateInPast возвращается, если дата мероприятия уже прошла
	ErrEventDateInPast = &domain.ValidationError{Field: "eventDate", Reason: "must not be in the past"}

	// ErrIDExhausted возвращается, если за все попытки не удалось получить свободный ID
	ErrIDExhausted = fmt.Errorf("create_booking: no free booking id after %d attempts: %w", domain.MaxBookingIDAttempts, domain.ErrStorage)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
