package public_quote

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service QuoteService
	logger  Logger
}

func NewHandler(service QuoteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// JSON GET /api/v1/public/bookings/{bookingId}/quote
// Публичный эндпоинт, клиент знает только номер бронирования
func (h *Handler) JSON(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "GET /public/bookings/{id}/quote")
	if !ok {
		return
	}

	quote, err := h.service.PublicQuote(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, "GET /public/bookings/{id}/quote", bookingID, err)
		return
	}

	h.logger.Info("GET /public/bookings/{id}/quote - Quote retrieved: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, quote)
}

// PDF GET /api/v1/public/bookings/{bookingId}/quote.pdf
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "GET /public/bookings/{id}/quote.pdf")
	if !ok {
		return
	}

	pdf, err := h.service.PublicQuotePDF(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, "GET /public/bookings/{id}/quote.pdf", bookingID, err)
		return
	}

	h.logger.Info("GET /public/bookings/{id}/quote.pdf - Quote rendered: booking_id=%s, size=%d", bookingID, len(pdf))
	handlers.RespondPDF(w, "quote-"+bookingID+".pdf", pdf)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, route string) (string, bool) {
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("%s - Empty booking ID", route)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return "", false
	}
	return bookingID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route, bookingID string, err error) {
	if errors.Is(err, bookings.ErrBookingNotFound) {
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Error("%s - Failed: booking_id=%s, error=%v", route, bookingID, err)
	handlers.RespondDomainError(w, err, msgNotFound)
}
