package public_quote

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
)

type QuoteService interface {
	PublicQuote(ctx context.Context, id string) (*models.PublicQuoteResponse, error)
	PublicQuotePDF(ctx context.Context, id string) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
