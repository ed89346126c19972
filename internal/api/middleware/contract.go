package middleware

import (
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// TokenParser проверяет токен сессии
type TokenParser interface {
	ParseToken(token string) (domain.Actor, error)
}

// HTTPMetrics собирает метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
