package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func quoted(total int64) *Booking {
	amount := dec(total)
	return &Booking{ID: "BA-2025-0001", Status: StatusQuoteSent, TotalAmount: &amount}
}

func payment(amount int64, t PaymentType) *PaymentRecord {
	return &PaymentRecord{BookingID: "BA-2025-0001", Amount: dec(amount), PaymentType: t, PaymentMethod: PaymentMethodGCash}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %d, got %s", field, want, got)
}

func TestSummarizePayments_Downpayment(t *testing.T) {
	s := SummarizePayments(quoted(40000), []*PaymentRecord{payment(20000, PaymentTypeDownpayment)})

	assertDecimal(t, 20000, s.TotalPaid, "totalPaid")
	assertDecimal(t, 20000, s.RemainingBalance, "remainingBalance")
	assertDecimal(t, 20000, s.DownpaymentAmount, "downpaymentAmount")
	assertDecimal(t, 20000, s.FinalPaymentAmount, "finalPaymentAmount")
	assertDecimal(t, 20000, s.DownpaymentPaid, "downpaymentPaid")
	assertDecimal(t, 0, s.DownpaymentRemaining, "downpaymentRemaining")
	assertDecimal(t, 0, s.Overpayment, "overpayment")
	assert.False(t, s.IsFullyPaid)
	assert.Equal(t, 1, s.PaymentCount)
}

func TestSummarizePayments_FullPaymentNotInDownpaymentBucket(t *testing.T) {
	s := SummarizePayments(quoted(40000), []*PaymentRecord{
		payment(20000, PaymentTypeDownpayment),
		payment(20000, PaymentTypeFull),
	})

	assertDecimal(t, 40000, s.TotalPaid, "totalPaid")
	assertDecimal(t, 0, s.RemainingBalance, "remainingBalance")
	assertDecimal(t, 20000, s.DownpaymentPaid, "downpaymentPaid")
	assert.True(t, s.IsFullyPaid)
}

func TestSummarizePayments_PartialCountsOnlyTowardTotal(t *testing.T) {
	s := SummarizePayments(quoted(10000), []*PaymentRecord{
		payment(1000, PaymentTypeReservation),
		payment(3000, PaymentTypePartial),
	})

	assertDecimal(t, 4000, s.TotalPaid, "totalPaid")
	assertDecimal(t, 1000, s.DownpaymentPaid, "downpaymentPaid")
	assertDecimal(t, 4000, s.DownpaymentRemaining, "downpaymentRemaining")
}

func TestSummarizePayments_OverpaymentIsNotClamped(t *testing.T) {
	s := SummarizePayments(quoted(10000), []*PaymentRecord{
		payment(8000, PaymentTypeDownpayment),
		payment(4000, PaymentTypeFull),
	})

	assertDecimal(t, -2000, s.RemainingBalance, "remainingBalance")
	assertDecimal(t, 2000, s.Overpayment, "overpayment")
	assertDecimal(t, 0, s.DownpaymentRemaining, "downpaymentRemaining")
	assert.True(t, s.IsFullyPaid)
}

func TestSummarizePayments_UnquotedNeverFullyPaid(t *testing.T) {
	zero := decimal.Zero
	cases := map[string]*Booking{
		"nil total":  {ID: "BA-2025-0002", Status: StatusInquiry},
		"zero total": {ID: "BA-2025-0003", Status: StatusQuoteSent, TotalAmount: &zero},
	}

	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			s := SummarizePayments(b, []*PaymentRecord{payment(5000, PaymentTypeFull)})
			assert.False(t, s.IsFullyPaid)
			assertDecimal(t, 5000, s.TotalPaid, "totalPaid")
			assertDecimal(t, 0, s.DownpaymentRemaining, "downpaymentRemaining")
		})
	}
}

func TestSummarizePayments_FractionalAmounts(t *testing.T) {
	total := decimal.RequireFromString("1000.01")
	b := &Booking{Status: StatusQuoteSent, TotalAmount: &total}

	s := SummarizePayments(b, []*PaymentRecord{
		{Amount: decimal.RequireFromString("0.1"), PaymentType: PaymentTypeReservation},
		{Amount: decimal.RequireFromString("0.2"), PaymentType: PaymentTypeReservation},
	})

	assert.True(t, decimal.RequireFromString("0.3").Equal(s.TotalPaid))
	assert.True(t, decimal.RequireFromString("500.005").Equal(s.DownpaymentAmount))
	assert.True(t, decimal.RequireFromString("999.71").Equal(s.RemainingBalance))
}

func TestBuildPaymentStatus(t *testing.T) {
	b := quoted(40000)
	b.EventDate = date(2025, 12, 25)

	status := BuildPaymentStatus(b, nil, date(2025, 11, 20))

	assert.Equal(t, date(2025, 11, 25), status.Deadlines.DownpaymentDeadline)
	assert.Equal(t, DeadlineDueSoon, status.DownpaymentStatus.Status)
	assert.Equal(t, 5, status.DownpaymentStatus.Days)
	assert.Equal(t, DeadlineUpcoming, status.FinalPaymentStatus.Status)
	assert.Equal(t, 0, status.Summary.PaymentCount)
}
