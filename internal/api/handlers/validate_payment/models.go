package validate_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	validatePayment "github.com/m04kA/EventsBookingService/internal/usecase/validate_payment"
)

// ValidatePaymentRequest HTTP request model
// Подтверждение платежа по референсу, который прислал клиент
type ValidatePaymentRequest struct {
	ReferenceNumber string          `json:"referenceNumber" validate:"notblank"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"paymentMethod" validate:"notblank"`
	PaymentType     *string         `json:"paymentType,omitempty"` // по умолчанию reservation
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	TransactionID   *string         `json:"transactionId,omitempty"`
	PaidBy          *string         `json:"paidBy,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

// PaymentValidatedResponse HTTP response model
type PaymentValidatedResponse struct {
	Booking       models.BookingResponse       `json:"booking"`
	Payment       models.PaymentResponse       `json:"payment"`
	Payments      []models.PaymentResponse     `json:"payments"`
	PaymentStatus models.PaymentStatusResponse `json:"paymentStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidatePaymentRequest) ToUseCaseRequest(bookingID string) *validatePayment.Request {
	return &validatePayment.Request{
		BookingID:       bookingID,
		ReferenceNumber: r.ReferenceNumber,
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod,
		PaymentType:     r.PaymentType,
		PaidAt:          r.PaidAt,
		TransactionID:   r.TransactionID,
		PaidBy:          r.PaidBy,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validatePayment.Response) *PaymentValidatedResponse {
	return &PaymentValidatedResponse{
		Booking:       *models.FromDomainBooking(resp.Booking),
		Payment:       *models.FromDomainPayment(resp.Payment),
		Payments:      models.FromDomainPaymentList(resp.Payments),
		PaymentStatus: models.FromPaymentStatus(resp.PaymentStatus),
	}
}
