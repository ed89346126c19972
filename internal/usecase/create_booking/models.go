package create_booking

import (
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	EventDate     time.Time // Дата мероприятия (без времени)
	EventType     string
	Venue         string
	CeremonyVenue *string
	GuestCount    *int
	Services      domain.ServiceFlags
	Notes         *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
