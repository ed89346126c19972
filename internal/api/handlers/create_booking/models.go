package create_booking

import (
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/EventsBookingService/internal/usecase/create_booking"
)

// ServicesRequest запрошенные услуги
type ServicesRequest struct {
	Lights        bool    `json:"lights"`
	Sound         bool    `json:"sound"`
	LEDWall       bool    `json:"ledWall"`
	Projector     bool    `json:"projector"`
	Smoke         bool    `json:"smoke"`
	LiveBand      bool    `json:"liveBand"`
	LiveBandRider *string `json:"liveBandRider,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string          `json:"customerName" validate:"notblank"`
	CustomerEmail string          `json:"customerEmail" validate:"required,email"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	EventDate     string          `json:"eventDate" validate:"required,isodate"` // "2025-12-25"
	EventType     string          `json:"eventType" validate:"notblank"`
	Venue         string          `json:"venue" validate:"notblank"`
	CeremonyVenue *string         `json:"ceremonyVenue,omitempty"`
	GuestCount    *int            `json:"guestCount,omitempty"`
	Services      ServicesRequest `json:"services"`
	Notes         *string         `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Дата уже проверена тегом isodate
	eventDate, err := time.Parse(domain.DateFormat, r.EventDate)
	if err != nil {
		return nil, domain.NewValidationError("eventDate", "must be a date in YYYY-MM-DD format")
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		EventDate:     eventDate,
		EventType:     r.EventType,
		Venue:         r.Venue,
		CeremonyVenue: r.CeremonyVenue,
		GuestCount:    r.GuestCount,
		Services: domain.ServiceFlags{
			Lights:        r.Services.Lights,
			Sound:         r.Services.Sound,
			LEDWall:       r.Services.LEDWall,
			Projector:     r.Services.Projector,
			Smoke:         r.Services.Smoke,
			LiveBand:      r.Services.LiveBand,
			LiveBandRider: r.Services.LiveBandRider,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
