package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	required := []struct {
		field string
		value string
		max   int
	}{
		{"customerName", req.CustomerName, domain.MaxNameLength},
		{"customerEmail", req.CustomerEmail, domain.MaxEmailLength},
		{"eventType", req.EventType, domain.MaxEventTypeLength},
		{"venue", req.Venue, domain.MaxVenueLength},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.NewValidationError(r.field, "is required")
		}
		if len(r.value) > r.max {
			return domain.NewValidationError(r.field, fmt.Sprintf("must be at most %d characters", r.max))
		}
	}

	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return domain.NewValidationError("customerEmail", "must be a valid email address")
	}

	if req.EventDate.IsZero() {
		return domain.NewValidationError("eventDate", "is required")
	}

	if req.CustomerPhone != nil && len(*req.CustomerPhone) > domain.MaxPhoneLength {
		return domain.NewValidationError("customerPhone", fmt.Sprintf("must be at most %d characters", domain.MaxPhoneLength))
	}

	if req.GuestCount != nil && (*req.GuestCount <= 0 || *req.GuestCount > domain.MaxGuestCount) {
		return domain.NewValidationError("guestCount", fmt.Sprintf("must be between 1 and %d", domain.MaxGuestCount))
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.NewValidationError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	return nil
}

// validateEventDate проверяет, что мероприятие не в прошлом (сегодня допустимо)
func validateEventDate(eventDate, now time.Time) error {
	if domain.DaysUntilDeadline(eventDate, now) < 0 {
		return ErrEventDateInPast
	}
	return nil
}

// trimOptional пустая строка превращается в nil
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
