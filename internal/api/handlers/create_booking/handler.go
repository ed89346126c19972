package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/EventsBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEventDateInPast    = "дата мероприятия уже прошла"
	msgIDExhausted        = "не удалось выделить номер бронирования, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Публичный эндпоинт формы заявки, авторизация не требуется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateRequest(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrEventDateInPast):
			h.logger.Warn("POST /bookings - Event date in past: event_date=%s", req.EventDate)
			handlers.RespondJSON(w, http.StatusBadRequest, handlers.ErrorResponse{Error: msgEventDateInPast, Field: "eventDate"})

		case errors.Is(err, createBooking.ErrIDExhausted):
			h.logger.Error("POST /bookings - Booking id space exhausted: error=%v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIDExhausted)

		case errors.Is(err, createBooking.ErrInternal):
			h.logger.Error("POST /bookings - Failed to create booking: error=%v", err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Warn("POST /bookings - Rejected: error=%v", err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, event_date=%s",
		result.Booking.ID, req.EventDate)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
