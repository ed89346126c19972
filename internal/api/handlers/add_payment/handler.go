package add_payment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	addPayment "github.com/m04kA/EventsBookingService/internal/usecase/add_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingActor       = "отсутствует автор запроса"
	msgBookingCancelled   = "бронирование отменено, платежи не принимаются"
	msgDuplicateReference = "платеж с таким референсом уже записан"
)

type Handler struct {
	useCase AddPaymentUseCase
	logger  Logger
}

func NewHandler(useCase AddPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{id}/payments - Empty booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req AddPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateRequest(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Validation failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, addPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, addPayment.ErrBookingCancelled):
			h.logger.Warn("POST /bookings/{id}/payments - Booking cancelled: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, addPayment.ErrDuplicateReference):
			h.logger.Warn("POST /bookings/{id}/payments - Duplicate reference: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgDuplicateReference)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("POST /bookings/{id}/payments - Rejected: booking_id=%s, user=%s, error=%v", bookingID, actor.Username, err)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to record payment: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment recorded: booking_id=%s, payment_id=%d, amount=%s, status=%s",
		bookingID, result.Payment.ID, result.Payment.Amount, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
