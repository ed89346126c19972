package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusInquiry   BookingStatus = "Inquiry"
	StatusQuoteSent BookingStatus = "QuoteSent"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// allowedTransitions lists every status reachable from a given status.
// QuoteSent -> QuoteSent is a re-quote.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusInquiry:   {StatusQuoteSent, StatusConfirmed, StatusCancelled},
	StatusQuoteSent: {StatusQuoteSent, StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo returns true if the lifecycle allows moving from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a raw string into a BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.TrimSpace(raw))
	if !status.IsValid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown status %q", raw))
	}
	return status, nil
}

// ServiceFlags are the production services requested by the customer
type ServiceFlags struct {
	Lights        bool
	Sound         bool
	LEDWall       bool
	Projector     bool
	Smoke         bool
	LiveBand      bool
	LiveBandRider *string
}

// Requested returns the human-readable names of the requested services
func (f ServiceFlags) Requested() []string {
	names := make([]string, 0, 6)
	if f.Lights {
		names = append(names, "Lights")
	}
	if f.Sound {
		names = append(names, "Sound system")
	}
	if f.LEDWall {
		names = append(names, "LED wall")
	}
	if f.Projector {
		names = append(names, "Projector")
	}
	if f.Smoke {
		names = append(names, "Smoke machine")
	}
	if f.LiveBand {
		names = append(names, "Live band")
	}
	return names
}

// Booking is one customer event inquiry and everything that happens to it afterwards
type Booking struct {
	ID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	EventDate     time.Time
	EventType     string
	Venue         string
	CeremonyVenue *string
	GuestCount    *int

	Services ServiceFlags
	Notes    *string

	// TotalAmount is nil until a quote is generated
	TotalAmount  *decimal.Decimal
	QuoteContent *string

	Status     BookingStatus
	Archived   bool
	ArchivedAt *time.Time
	ArchivedBy *string

	LastEditedBy *string
	LastEditedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBookingID builds an identifier of the form BA-<year>-<4 digits>
func NewBookingID(year int) string {
	return fmt.Sprintf("%s-%d-%04d", BookingIDPrefix, year, rand.IntN(BookingIDSuffixRange))
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsQuoted returns true once a positive total has been set
func (b *Booking) IsQuoted() bool {
	return b.TotalAmount != nil && b.TotalAmount.IsPositive()
}

// HasPaymentDeadlines returns true for bookings whose payment deadlines are tracked
func (b *Booking) HasPaymentDeadlines() bool {
	if b.Archived {
		return false
	}
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// TransitionTo moves the booking to next if the lifecycle allows it
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	return nil
}

// ApplyQuote sets the quoted total and moves the booking to QuoteSent
func (b *Booking) ApplyQuote(amount decimal.Decimal, content *string, editedBy string, at time.Time) error {
	if !amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	if err := b.TransitionTo(StatusQuoteSent); err != nil {
		return err
	}
	b.TotalAmount = &amount
	if content != nil {
		b.QuoteContent = content
	}
	b.MarkEdited(editedBy, at)
	return nil
}

// Cancel moves any non-cancelled booking to Cancelled
func (b *Booking) Cancel(editedBy string, at time.Time) error {
	if err := b.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	b.MarkEdited(editedBy, at)
	return nil
}

// Archive hides the booking from the default list. Status is left untouched.
// Returns false if the booking was already archived.
func (b *Booking) Archive(by string, at time.Time) bool {
	if b.Archived {
		return false
	}
	b.Archived = true
	b.ArchivedAt = &at
	b.ArchivedBy = &by
	return true
}

// Restore reverses Archive. Returns false if the booking was not archived.
func (b *Booking) Restore() bool {
	if !b.Archived {
		return false
	}
	b.Archived = false
	b.ArchivedAt = nil
	b.ArchivedBy = nil
	return true
}

// MarkEdited stamps the audit fields
func (b *Booking) MarkEdited(by string, at time.Time) {
	b.LastEditedBy = &by
	b.LastEditedAt = &at
}

// BookingPatch is a partial update of the editable booking fields.
// Nil means "leave unchanged"; an empty string clears an optional text field.
// Status, total amount and archive fields are deliberately absent.
type BookingPatch struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	EventDate     *time.Time
	EventType     *string
	Venue         *string
	CeremonyVenue *string
	GuestCount    *int
	Lights        *bool
	Sound         *bool
	LEDWall       *bool
	Projector     *bool
	Smoke         *bool
	LiveBand      *bool
	LiveBandRider *string
	Notes         *string
	QuoteContent  *string
}

// IsEmpty returns true if the patch changes nothing
func (p BookingPatch) IsEmpty() bool {
	return p == BookingPatch{}
}

// TouchesQuote returns true if the patch edits quote content
func (p BookingPatch) TouchesQuote() bool {
	return p.QuoteContent != nil
}

// ApplyPatch copies the set fields of p onto the booking
func (b *Booking) ApplyPatch(p BookingPatch) {
	if p.CustomerName != nil {
		b.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		b.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		b.CustomerPhone = optionalText(*p.CustomerPhone)
	}
	if p.EventDate != nil {
		b.EventDate = DateOnly(*p.EventDate)
	}
	if p.EventType != nil {
		b.EventType = *p.EventType
	}
	if p.Venue != nil {
		b.Venue = *p.Venue
	}
	if p.CeremonyVenue != nil {
		b.CeremonyVenue = optionalText(*p.CeremonyVenue)
	}
	if p.GuestCount != nil {
		guests := *p.GuestCount
		b.GuestCount = &guests
	}
	if p.Lights != nil {
		b.Services.Lights = *p.Lights
	}
	if p.Sound != nil {
		b.Services.Sound = *p.Sound
	}
	if p.LEDWall != nil {
		b.Services.LEDWall = *p.LEDWall
	}
	if p.Projector != nil {
		b.Services.Projector = *p.Projector
	}
	if p.Smoke != nil {
		b.Services.Smoke = *p.Smoke
	}
	if p.LiveBand != nil {
		b.Services.LiveBand = *p.LiveBand
	}
	if p.LiveBandRider != nil {
		b.Services.LiveBandRider = optionalText(*p.LiveBandRider)
	}
	if p.Notes != nil {
		b.Notes = optionalText(*p.Notes)
	}
	if p.QuoteContent != nil {
		b.QuoteContent = optionalText(*p.QuoteContent)
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// BookingFilter фильтр списка бронирований
type BookingFilter struct {
	Statuses      []BookingStatus // пусто - любой статус
	Archived      *bool           // nil - архивные и активные
	Search        *string         // подстрока имени, email или ID
	EventDateFrom *time.Time
	EventDateTo   *time.Time
	Limit         uint64 // 0 - без ограничения
	Offset        uint64
}
