package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

const tableName = "payments"

var columns = []string{
	"id",
	"booking_id",
	"amount",
	"payment_type",
	"payment_method",
	"reference_number",
	"transaction_id",
	"paid_at",
	"paid_by",
	"validated_by",
	"notes",
	"created_at",
}

// PaymentRow строка таблицы payments
type PaymentRow struct {
	ID              int64
	BookingID       string
	Amount          decimal.Decimal
	PaymentType     string
	PaymentMethod   string
	ReferenceNumber *string
	TransactionID   *string
	PaidAt          time.Time
	PaidBy          *string
	ValidatedBy     *string
	Notes           *string
	CreatedAt       time.Time
}

func (r *PaymentRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.BookingID,
		&r.Amount,
		&r.PaymentType,
		&r.PaymentMethod,
		&r.ReferenceNumber,
		&r.TransactionID,
		&r.PaidAt,
		&r.PaidBy,
		&r.ValidatedBy,
		&r.Notes,
		&r.CreatedAt,
	}
}

// MapRowToPayment преобразует строку БД в доменную модель
func MapRowToPayment(row *PaymentRow) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:              row.ID,
		BookingID:       row.BookingID,
		Amount:          row.Amount,
		PaymentType:     domain.PaymentType(row.PaymentType),
		PaymentMethod:   domain.PaymentMethod(row.PaymentMethod),
		ReferenceNumber: row.ReferenceNumber,
		TransactionID:   row.TransactionID,
		PaidAt:          row.PaidAt,
		PaidBy:          row.PaidBy,
		ValidatedBy:     row.ValidatedBy,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
	}
}

// MapPaymentToRow преобразует доменную модель в строку БД
func MapPaymentToRow(p *domain.PaymentRecord) *PaymentRow {
	return &PaymentRow{
		ID:              p.ID,
		BookingID:       p.BookingID,
		Amount:          p.Amount,
		PaymentType:     string(p.PaymentType),
		PaymentMethod:   string(p.PaymentMethod),
		ReferenceNumber: p.ReferenceNumber,
		TransactionID:   p.TransactionID,
		PaidAt:          p.PaidAt,
		PaidBy:          p.PaidBy,
		ValidatedBy:     p.ValidatedBy,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}
