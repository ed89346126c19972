package bookings

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// validatePatch проверяет изменяемые поля до обращения к БД
func validatePatch(p domain.BookingPatch) error {
	if p.IsEmpty() {
		return ErrNothingToUpdate
	}

	required := []struct {
		field string
		value *string
		max   int
	}{
		{"customerName", p.CustomerName, domain.MaxNameLength},
		{"customerEmail", p.CustomerEmail, domain.MaxEmailLength},
		{"eventType", p.EventType, domain.MaxEventTypeLength},
		{"venue", p.Venue, domain.MaxVenueLength},
	}
	for _, r := range required {
		if r.value == nil {
			continue
		}
		if strings.TrimSpace(*r.value) == "" {
			return domain.NewValidationError(r.field, "must not be blank")
		}
		if len(*r.value) > r.max {
			return domain.NewValidationError(r.field, fmt.Sprintf("must be at most %d characters", r.max))
		}
	}

	if p.CustomerEmail != nil {
		if _, err := mail.ParseAddress(*p.CustomerEmail); err != nil {
			return domain.NewValidationError("customerEmail", "must be a valid email address")
		}
	}

	if p.EventDate != nil && p.EventDate.IsZero() {
		return domain.NewValidationError("eventDate", "is required")
	}

	if p.GuestCount != nil && (*p.GuestCount <= 0 || *p.GuestCount > domain.MaxGuestCount) {
		return domain.NewValidationError("guestCount", fmt.Sprintf("must be between 1 and %d", domain.MaxGuestCount))
	}

	if p.QuoteContent != nil && len(*p.QuoteContent) > domain.MaxQuoteContentLength {
		return domain.NewValidationError("quoteContent", fmt.Sprintf("must be at most %d characters", domain.MaxQuoteContentLength))
	}

	if p.Notes != nil && len(*p.Notes) > domain.MaxNotesLength {
		return domain.NewValidationError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	return nil
}
