package update_booking

import (
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// ServicesPatch частичное изменение запрошенных услуг
type ServicesPatch struct {
	Lights        *bool   `json:"lights,omitempty"`
	Sound         *bool   `json:"sound,omitempty"`
	LEDWall       *bool   `json:"ledWall,omitempty"`
	Projector     *bool   `json:"projector,omitempty"`
	Smoke         *bool   `json:"smoke,omitempty"`
	LiveBand      *bool   `json:"liveBand,omitempty"`
	LiveBandRider *string `json:"liveBandRider,omitempty"`
}

// UpdateBookingRequest HTTP request model
// Отсутствующее поле не меняется, пустая строка очищает необязательное поле
type UpdateBookingRequest struct {
	CustomerName  *string        `json:"customerName,omitempty" validate:"omitnil,notblank"`
	CustomerEmail *string        `json:"customerEmail,omitempty" validate:"omitnil,email"`
	CustomerPhone *string        `json:"customerPhone,omitempty"`
	EventDate     *string        `json:"eventDate,omitempty" validate:"omitnil,isodate"`
	EventType     *string        `json:"eventType,omitempty" validate:"omitnil,notblank"`
	Venue         *string        `json:"venue,omitempty" validate:"omitnil,notblank"`
	CeremonyVenue *string        `json:"ceremonyVenue,omitempty"`
	GuestCount    *int           `json:"guestCount,omitempty"`
	Services      *ServicesPatch `json:"services,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	QuoteContent  *string        `json:"quoteContent,omitempty"`
}

// ToDomainPatch конвертирует HTTP запрос в domain изменение
func (r *UpdateBookingRequest) ToDomainPatch() (domain.BookingPatch, error) {
	patch := domain.BookingPatch{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		EventType:     r.EventType,
		Venue:         r.Venue,
		CeremonyVenue: r.CeremonyVenue,
		GuestCount:    r.GuestCount,
		Notes:         r.Notes,
		QuoteContent:  r.QuoteContent,
	}

	if r.EventDate != nil {
		eventDate, err := time.Parse(domain.DateFormat, *r.EventDate)
		if err != nil {
			return patch, domain.NewValidationError("eventDate", "must be a date in YYYY-MM-DD format")
		}
		patch.EventDate = &eventDate
	}

	if s := r.Services; s != nil {
		patch.Lights = s.Lights
		patch.Sound = s.Sound
		patch.LEDWall = s.LEDWall
		patch.Projector = s.Projector
		patch.Smoke = s.Smoke
		patch.LiveBand = s.LiveBand
		patch.LiveBandRider = s.LiveBandRider
	}

	return patch, nil
}
