package cancel_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingActor     = "отсутствует автор запроса"
	msgCannotCancel     = "бронирование не может быть отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{id}/cancel - Empty booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	// Отменяем бронирование
	result, err := h.service.Cancel(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("POST /bookings/{id}/cancel - Access denied: booking_id=%s, user=%s", bookingID, actor.Username)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s, user=%s",
		bookingID, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
