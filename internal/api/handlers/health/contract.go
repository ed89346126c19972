package health

import "context"

// Pinger проверяет доступность зависимости
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
