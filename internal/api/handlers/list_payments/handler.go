package list_payments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/payments"
)

const (
	msgMissingActor = "отсутствует автор запроса"
	msgNotFound     = "бронирование не найдено"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments
// Query params: bookingId (опционально, без него все платежи)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /payments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var bookingID *string
	if raw := strings.TrimSpace(r.URL.Query().Get("bookingId")); raw != "" {
		bookingID = &raw
	}

	result, err := h.service.List(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("GET /payments - Booking not found: booking_id=%s", r.URL.Query().Get("bookingId"))
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("GET /payments - Access denied: user=%s", actor.Username)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("GET /payments - Failed to list payments: error=%v", err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("GET /payments - Payments retrieved successfully: user=%s, count=%d", actor.Username, len(result.Payments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
