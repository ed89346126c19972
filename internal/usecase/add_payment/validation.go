package add_payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// buildPayment валидирует запрос и собирает платеж
func buildPayment(req *Request, now time.Time) (*domain.PaymentRecord, error) {
	paymentType, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, domain.NewValidationError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	paidAt := now
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = *req.PaidAt
	}

	payment := &domain.PaymentRecord{
		BookingID:       strings.TrimSpace(req.BookingID),
		Amount:          req.Amount,
		PaymentType:     paymentType,
		PaymentMethod:   method,
		ReferenceNumber: trimOptional(req.ReferenceNumber),
		TransactionID:   trimOptional(req.TransactionID),
		PaidAt:          paidAt,
		PaidBy:          trimOptional(req.PaidBy),
		Notes:           trimOptional(req.Notes),
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	return payment, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
