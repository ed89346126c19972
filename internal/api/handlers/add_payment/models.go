package add_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	addPayment "github.com/m04kA/EventsBookingService/internal/usecase/add_payment"
)

// AddPaymentRequest HTTP request model
type AddPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentType     string          `json:"paymentType" validate:"notblank"`
	PaymentMethod   string          `json:"paymentMethod" validate:"notblank"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	TransactionID   *string         `json:"transactionId,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"` // RFC3339
	PaidBy          *string         `json:"paidBy,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

// PaymentRecordedResponse HTTP response model
type PaymentRecordedResponse struct {
	Booking       models.BookingResponse       `json:"booking"`
	Payment       models.PaymentResponse       `json:"payment"`
	Payments      []models.PaymentResponse     `json:"payments"`
	PaymentStatus models.PaymentStatusResponse `json:"paymentStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddPaymentRequest) ToUseCaseRequest(bookingID string) *addPayment.Request {
	return &addPayment.Request{
		BookingID:       bookingID,
		Amount:          r.Amount,
		PaymentType:     r.PaymentType,
		PaymentMethod:   r.PaymentMethod,
		ReferenceNumber: r.ReferenceNumber,
		TransactionID:   r.TransactionID,
		PaidAt:          r.PaidAt,
		PaidBy:          r.PaidBy,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addPayment.Response) *PaymentRecordedResponse {
	return &PaymentRecordedResponse{
		Booking:       *models.FromDomainBooking(resp.Booking),
		Payment:       *models.FromDomainPayment(resp.Payment),
		Payments:      models.FromDomainPaymentList(resp.Payments),
		PaymentStatus: models.FromPaymentStatus(resp.PaymentStatus),
	}
}
