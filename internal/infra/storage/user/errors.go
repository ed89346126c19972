package user

import (
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("user.repository: user %w", domain.ErrNotFound)

	// ErrUsernameTaken возвращается, если логин уже занят
	ErrUsernameTaken = fmt.Errorf("user.repository: username already taken: %w", domain.ErrConflict)

	ErrBuildQuery = errors.New("user.repository: failed to build query")
	ErrExecQuery  = errors.New("user.repository: failed to execute query")
	ErrScanRow    = errors.New("user.repository: failed to scan row")
)
