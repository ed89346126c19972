package update_booking

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
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingActor       = "отсутствует автор запроса"
	msgNothingToUpdate    = "запрос не содержит изменений"
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

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("PATCH /bookings/{id} - Empty booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	// Неизвестные поля (status, totalAmount, archived) отклоняются декодером
	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateRequest(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Validation failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	patch, err := req.ToDomainPatch()
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	result, err := h.service.Update(r.Context(), actor, bookingID, patch)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNothingToUpdate):
			h.logger.Warn("PATCH /bookings/{id} - Nothing to update: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("PATCH /bookings/{id} - Rejected: booking_id=%s, user=%s, error=%v", bookingID, actor.Username, err)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%s, user=%s", bookingID, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
