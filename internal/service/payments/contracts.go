package payments

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForUpdate(ctx context.Context, id string) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentRecord, error)
	List(ctx context.Context, bookingID *string) ([]*domain.PaymentRecord, error)
	Delete(ctx context.Context, bookingID string, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
