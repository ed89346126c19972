package delete_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/payments"
)

const (
	msgInvalidPaymentID = "некорректный ID платежа"
	msgNotFound         = "платеж не найден"
	msgMissingActor     = "отсутствует автор запроса"
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

// Handle DELETE /api/v1/payments/{paymentId}
// Статус бронирования не откатывается, в ответе пересчитанная сводка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(mux.Vars(r)["paymentId"], 10, 64)
	if err != nil || paymentID <= 0 {
		h.logger.Warn("DELETE /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /payments/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := h.service.Delete(r.Context(), actor, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("DELETE /payments/{id} - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("DELETE /payments/{id} - Access denied: payment_id=%d, user=%s", paymentID, actor.Username)
			handlers.RespondDomainError(w, err, msgNotFound)

		default:
			h.logger.Error("DELETE /payments/{id} - Failed to delete payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondDomainError(w, err, msgNotFound)
		}
		return
	}

	h.logger.Info("DELETE /payments/{id} - Payment deleted: payment_id=%d, booking_id=%s, user=%s",
		paymentID, result.BookingID, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
