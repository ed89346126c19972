package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/integrations/telegram"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]*domain.PaymentRecord, error)
}

// Notifier отправка сводки в чат сотрудников
type Notifier interface {
	SendDeadlineDigest(ctx context.Context, digest telegram.Digest) error
}

// Metrics gauge бронирований по дедлайнам
type Metrics interface {
	SetDeadlineCount(deadline, status string, count int)
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

// RealTimeProvider реальный провайдер времени в часовом поясе мероприятий
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
