package domain

import "github.com/shopspring/decimal"

// Booking identifiers
const (
	BookingIDPrefix      = "BA"
	BookingIDSuffixRange = 10000 // four digits
	MaxBookingIDAttempts = 5
)

// Business validation constants
const (
	MaxNameLength          = 200
	MaxEmailLength         = 254
	MaxPhoneLength         = 40
	MaxEventTypeLength     = 100
	MaxVenueLength         = 300
	MaxNotesLength         = 2000
	MaxQuoteContentLength  = 20000
	MaxReferenceLength     = 100
	MaxTransactionIDLength = 100
	MaxPaidByLength        = 255
	MaxGuestCount          = 100000
	DueSoonWindowDays      = 7
	DownpaymentMonthsAhead = 1
)

// Money columns are NUMERIC(12,2)
const AmountScale = 2

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DownpaymentRatio share of the quoted total expected as downpayment.
var DownpaymentRatio = decimal.NewFromFloat(0.5)

// MaxAmount is the smallest value that no longer fits a NUMERIC(12,2) column.
var MaxAmount = decimal.New(1, 10)

// ActiveStatuses statuses that carry payment deadlines
var ActiveStatuses = []BookingStatus{
	StatusQuoteSent,
	StatusConfirmed,
}
