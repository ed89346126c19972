package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный логин или пароль"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateRequest(&req); err != nil {
		h.logger.Warn("POST /auth/login - Validation failed: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	username := strings.TrimSpace(req.Username)
	result, err := h.service.Authenticate(r.Context(), username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Не различаем неизвестный логин и неверный пароль
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed to authenticate: username=%s, error=%v", username, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /auth/login - User logged in: username=%s, role=%s", result.User.Username, result.User.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
