package add_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Request модель запроса на запись платежа
type Request struct {
	BookingID       string
	Amount          decimal.Decimal
	PaymentType     string
	PaymentMethod   string
	ReferenceNumber *string
	TransactionID   *string
	PaidAt          *time.Time // по умолчанию текущее время
	PaidBy          *string
	Notes           *string
}

// Response бронирование, записанный платеж и пересчитанный статус оплаты
type Response struct {
	Booking       *domain.Booking
	Payment       *domain.PaymentRecord
	Payments      []*domain.PaymentRecord
	PaymentStatus domain.PaymentStatus
}
