package generate_quote

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	generateQuote "github.com/m04kA/EventsBookingService/internal/usecase/generate_quote"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingActor       = "отсутствует автор запроса"
	msgTotalBelowPaid     = "сумма котировки меньше уже оплаченной, передайте allowBelowPaid для подтверждения"
	msgCannotQuote        = "котировка недоступна для бронирования в текущем статусе"
)

type Handler struct {
	useCase GenerateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GenerateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{id}/quote - Empty booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/quote - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req GenerateQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/quote - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, generateQuote.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/quote - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateQuote.ErrTotalBelowPaid):
			h.logger.Warn("POST /bookings/{id}/quote - Total below paid: booking_id=%s, amount=%s", bookingID, req.Amount)
			handlers.RespondConflict(w, msgTotalBelowPaid)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/quote - Invalid status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotQuote)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("POST /bookings/{id}/quote - Rejected: booking_id=%s, user=%s, error=%v", bookingID, actor.Username, err)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/quote - Failed to generate quote: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/quote - Quote generated: booking_id=%s, amount=%s, status=%s, user=%s",
		bookingID, req.Amount, result.Booking.Status, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
