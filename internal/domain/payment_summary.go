package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSummary is the read-side projection of a booking's payments.
// It is recomputed on every read and never persisted.
type PaymentSummary struct {
	TotalAmount          decimal.Decimal
	TotalPaid            decimal.Decimal
	RemainingBalance     decimal.Decimal // negative on overpayment
	Overpayment          decimal.Decimal
	IsFullyPaid          bool
	DownpaymentAmount    decimal.Decimal
	FinalPaymentAmount   decimal.Decimal
	DownpaymentPaid      decimal.Decimal
	DownpaymentRemaining decimal.Decimal // never negative
	PaymentCount         int
}

// SummarizePayments aggregates payments against the booking's quoted total.
// A booking without a positive total is never fully paid.
func SummarizePayments(b *Booking, payments []*PaymentRecord) PaymentSummary {
	total := decimal.Zero
	if b != nil && b.TotalAmount != nil {
		total = *b.TotalAmount
	}

	paid := decimal.Zero
	downpaymentPaid := decimal.Zero
	for _, p := range payments {
		if p == nil {
			continue
		}
		paid = paid.Add(p.Amount)
		if p.PaymentType.CountsTowardDownpayment() {
			downpaymentPaid = downpaymentPaid.Add(p.Amount)
		}
	}

	remaining := total.Sub(paid)
	downpayment := total.Mul(DownpaymentRatio)

	return PaymentSummary{
		TotalAmount:          total,
		TotalPaid:            paid,
		RemainingBalance:     remaining,
		Overpayment:          decimal.Max(decimal.Zero, remaining.Neg()),
		IsFullyPaid:          total.IsPositive() && paid.GreaterThanOrEqual(total),
		DownpaymentAmount:    downpayment,
		FinalPaymentAmount:   total.Sub(downpayment),
		DownpaymentPaid:      downpaymentPaid,
		DownpaymentRemaining: decimal.Max(decimal.Zero, downpayment.Sub(downpaymentPaid)),
		PaymentCount:         countPayments(payments),
	}
}

func countPayments(payments []*PaymentRecord) int {
	n := 0
	for _, p := range payments {
		if p != nil {
			n++
		}
	}
	return n
}

// PaymentStatus combines the payment summary with deadline information
type PaymentStatus struct {
	Summary            PaymentSummary
	Deadlines          Deadlines
	DownpaymentStatus  DeadlineStatus
	FinalPaymentStatus DeadlineStatus
}

// BuildPaymentStatus computes the full payment view of a booking as of now
func BuildPaymentStatus(b *Booking, payments []*PaymentRecord, now time.Time) PaymentStatus {
	deadlines := CalculateDeadlines(b.EventDate)
	return PaymentStatus{
		Summary:            SummarizePayments(b, payments),
		Deadlines:          deadlines,
		DownpaymentStatus:  FormatDeadlineStatus(deadlines.DownpaymentDeadline, now),
		FinalPaymentStatus: FormatDeadlineStatus(deadlines.FinalPaymentDeadline, now),
	}
}
