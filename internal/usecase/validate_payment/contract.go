package validate_payment

import (
	"context"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForUpdate(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error)
	List(ctx context.Context, bookingID *string) ([]*domain.PaymentRecord, error)
	ExistsByReference(ctx context.Context, bookingID, reference string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомления сотрудников о подтвержденных платежах
type Notifier interface {
	NotifyPaymentValidated(ctx context.Context, booking *domain.Booking, payment *domain.PaymentRecord) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncPaymentsRecorded(paymentType, source string)
	IncStatusTransition(from, to string)
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
