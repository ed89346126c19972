package login

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/service/auth/models"
)

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
