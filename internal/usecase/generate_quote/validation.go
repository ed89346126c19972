package generate_quote

import (
	"fmt"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return domain.NewValidationError("bookingId", "is required")
	}

	if err := domain.ValidateAmount("amount", req.Amount); err != nil {
		return err
	}

	if req.QuoteContent != nil && len(*req.QuoteContent) > domain.MaxQuoteContentLength {
		return domain.NewValidationError("quoteContent", fmt.Sprintf("must be at most %d characters", domain.MaxQuoteContentLength))
	}

	return nil
}
