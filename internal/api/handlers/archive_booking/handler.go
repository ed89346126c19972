package archive_booking

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingActor     = "отсутствует автор запроса"
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

// Archive POST /api/v1/bookings/{bookingId}/archive
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /bookings/{id}/archive", h.service.Archive)
}

// Restore DELETE /api/v1/bookings/{bookingId}/archive
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /bookings/{id}/archive", h.service.Restore)
}

// Обе операции идемпотентны, повторный вызов возвращает текущее состояние
func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error),
) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("%s - Empty booking ID", route)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", route)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := apply(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("%s - Access denied: booking_id=%s, user=%s", route, bookingID, actor.Username)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("%s - Failed: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("%s - Done: booking_id=%s, archived=%t, user=%s", route, bookingID, result.Archived, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
