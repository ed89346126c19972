package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Notifier уведомления сотрудников о новых заявках
type Notifier interface {
	NotifyNewInquiry(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingsCreated()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
