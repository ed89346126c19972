package generate_quote

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	generateQuote "github.com/m04kA/EventsBookingService/internal/usecase/generate_quote"
)

// GenerateQuoteRequest HTTP request model
// amount принимается числом или строкой ("40000.50")
type GenerateQuoteRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	QuoteContent   *string         `json:"quoteContent,omitempty"`
	AllowBelowPaid bool            `json:"allowBelowPaid,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateQuoteRequest) ToUseCaseRequest(bookingID string) *generateQuote.Request {
	return &generateQuote.Request{
		BookingID:      bookingID,
		Amount:         r.Amount,
		QuoteContent:   r.QuoteContent,
		AllowBelowPaid: r.AllowBelowPaid,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateQuote.Response) *models.BookingDetailsResponse {
	return &models.BookingDetailsResponse{
		Booking:       *models.FromDomainBooking(resp.Booking),
		Payments:      models.FromDomainPaymentList(resp.Payments),
		PaymentStatus: models.FromPaymentStatus(resp.PaymentStatus),
	}
}
