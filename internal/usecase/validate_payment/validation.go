package validate_payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// buildPayment валидирует запрос и собирает платеж
// Все проверки выполняются до обращения к БД
func buildPayment(req *Request, validatedBy string, now time.Time) (*domain.PaymentRecord, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, domain.NewValidationError("bookingId", "is required")
	}

	reference := strings.TrimSpace(req.ReferenceNumber)
	if reference == "" {
		return nil, domain.NewValidationError("referenceNumber", "is required")
	}

	if err := domain.ValidateAmount("amount", req.Amount); err != nil {
		return nil, err
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentType := domain.PaymentTypeReservation
	if req.PaymentType != nil && strings.TrimSpace(*req.PaymentType) != "" {
		paymentType, err = domain.ParsePaymentType(*req.PaymentType)
		if err != nil {
			return nil, err
		}
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
		ReferenceNumber: &reference,
		TransactionID:   trimOptional(req.TransactionID),
		PaidAt:          paidAt,
		PaidBy:          trimOptional(req.PaidBy),
		ValidatedBy:     &validatedBy,
		Notes:           trimOptional(req.Notes),
	}

	// Инварианты записи (длина референса и т.д.)
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
