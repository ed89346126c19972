package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies a payment against the quoted total
type PaymentType string

const (
	PaymentTypeReservation PaymentType = "reservation"
	PaymentTypeDownpayment PaymentType = "downpayment"
	PaymentTypePartial     PaymentType = "partial"
	PaymentTypeFull        PaymentType = "full"
)

// IsValid returns true for a known payment type
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeReservation, PaymentTypeDownpayment, PaymentTypePartial, PaymentTypeFull:
		return true
	}
	return false
}

// CountsTowardDownpayment returns true for the types that fill the downpayment bucket.
// Partial and full payments count toward the total only.
func (t PaymentType) CountsTowardDownpayment() bool {
	return t == PaymentTypeReservation || t == PaymentTypeDownpayment
}

// ParsePaymentType converts a raw string into a PaymentType
func ParsePaymentType(raw string) (PaymentType, error) {
	t := PaymentType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", NewValidationError("paymentType", fmt.Sprintf("unknown payment type %q", raw))
	}
	return t, nil
}

// PaymentMethod is the channel the customer paid through
type PaymentMethod string

const (
	PaymentMethodGCash        PaymentMethod = "gcash"
	PaymentMethodMaya         PaymentMethod = "maya"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodGCash, PaymentMethodMaya, PaymentMethodBankTransfer,
		PaymentMethodCash, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// ParsePaymentMethod accepts "Bank Transfer", "bank-transfer" and "bank_transfer" alike
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	m := PaymentMethod(normalized)
	if !m.IsValid() {
		return "", NewValidationError("paymentMethod", fmt.Sprintf("unknown payment method %q", raw))
	}
	return m, nil
}

// PaymentRecord is one payment received against a booking
type PaymentRecord struct {
	ID              int64
	BookingID       string
	Amount          decimal.Decimal
	PaymentType     PaymentType
	PaymentMethod   PaymentMethod
	ReferenceNumber *string
	TransactionID   *string
	PaidAt          time.Time
	PaidBy          *string
	ValidatedBy     *string
	Notes           *string
	CreatedAt       time.Time
}

// Validate checks the record invariants before persistence
func (p *PaymentRecord) Validate() error {
	if strings.TrimSpace(p.BookingID) == "" {
		return NewValidationError("bookingId", "is required")
	}
	if err := ValidateAmount("amount", p.Amount); err != nil {
		return err
	}
	if !p.PaymentType.IsValid() {
		return NewValidationError("paymentType", fmt.Sprintf("unknown payment type %q", p.PaymentType))
	}
	if !p.PaymentMethod.IsValid() {
		return NewValidationError("paymentMethod", fmt.Sprintf("unknown payment method %q", p.PaymentMethod))
	}
	if p.ReferenceNumber != nil && len(*p.ReferenceNumber) > MaxReferenceLength {
		return NewValidationError("referenceNumber", fmt.Sprintf("must be at most %d characters", MaxReferenceLength))
	}
	if p.TransactionID != nil && len(*p.TransactionID) > MaxTransactionIDLength {
		return NewValidationError("transactionId", fmt.Sprintf("must be at most %d characters", MaxTransactionIDLength))
	}
	if p.PaidBy != nil && len(*p.PaidBy) > MaxPaidByLength {
		return NewValidationError("paidBy", fmt.Sprintf("must be at most %d characters", MaxPaidByLength))
	}
	return nil
}

// ValidateAmount checks that a money value is positive, has at most
// AmountScale decimal places and stays below MaxAmount.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidationError(field, "must be greater than zero")
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", AmountScale))
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return NewValidationError(field, "must be less than "+MaxAmount.String())
	}
	return nil
}
