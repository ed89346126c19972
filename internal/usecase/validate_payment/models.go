package validate_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Request модель запроса на подтверждение платежа по референсу
type Request struct {
	BookingID       string
	ReferenceNumber string
	Amount          decimal.Decimal
	PaymentMethod   string
	PaymentType     *string    // по умолчанию reservation
	PaidAt          *time.Time // по умолчанию текущее время
	TransactionID   *string
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
