package archive_booking

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Archive(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error)
	Restore(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
