package generate_quote

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Request модель запроса на формирование котировки
type Request struct {
	BookingID    string
	Amount       decimal.Decimal
	QuoteContent *string
	// AllowBelowPaid разрешает сумму меньше уже оплаченной
	AllowBelowPaid bool
}

// Response бронирование после котировки и пересчитанный статус оплаты
type Response struct {
	Booking       *domain.Booking
	Payments      []*domain.PaymentRecord
	PaymentStatus domain.PaymentStatus
}
