package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
)

const msgMissingActor = "отсутствует автор запроса"

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

// Handle GET /api/v1/bookings
// Query params: status, archived, search, from, to, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	result, err := h.service.List(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("GET /bookings - Rejected: user=%s, error=%v", actor.Username, err)
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user=%s, error=%v", actor.Username, err)
		}
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user=%s, count=%d", actor.Username, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
