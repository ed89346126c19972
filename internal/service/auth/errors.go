package auth

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrInvalidCredentials возвращается и для неизвестного логина, и для неверного пароля
	ErrInvalidCredentials = fmt.Errorf("auth.service: invalid credentials: %w", domain.ErrUnauthenticated)

	// ErrInvalidToken возвращается для неподписанного, просроченного или поврежденного токена
	ErrInvalidToken = fmt.Errorf("auth.service: invalid token: %w", domain.ErrUnauthenticated)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
