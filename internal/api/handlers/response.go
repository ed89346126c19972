package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/pkg/validation"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgForbidden        = "недостаточно прав для операции"
	msgUnauthorized     = "требуется авторизация"
	msgNotFound         = "ресурс не найден"
	msgConflict         = "операция конфликтует с текущим состоянием"
	msgStorageRetryable = "хранилище временно недоступно, повторите запрос"
	msgInvalidInput     = "некорректные входные данные"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

var requestValidator = validation.New()

// DecodeJSON читает тело запроса в dst, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// ValidateRequest проверяет DTO по тегам validate
// Нарушение возвращается как *domain.ValidationError с json-именем поля
func ValidateRequest(dst interface{}) error {
	err := requestValidator.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErr validation.FieldError
	if errors.As(err, &fieldErr) {
		return domain.NewValidationError(fieldErr.Field, fieldErr.Reason())
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// RespondNoContent отправляет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondPDF отправляет PDF документ для скачивания
func RespondPDF(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// RespondError отправляет ошибку с заданным кодом
func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidationError отправляет 400 с именем поля
func RespondValidationError(w http.ResponseWriter, err *domain.ValidationError) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Reason, Field: err.Field})
}

// StatusFor возвращает HTTP код для категории ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case domain.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает по категории ошибки
// notFoundMsg используется для 404, текст ошибок хранилища клиенту не отдается
func RespondDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	code := StatusFor(err)

	switch code {
	case http.StatusBadRequest:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			RespondValidationError(w, vErr)
			return
		}
		RespondBadRequest(w, msgInvalidInput)
	case http.StatusUnauthorized:
		RespondUnauthorized(w, msgUnauthorized)
	case http.StatusForbidden:
		RespondForbidden(w, msgForbidden)
	case http.StatusNotFound:
		if notFoundMsg == "" {
			notFoundMsg = msgNotFound
		}
		RespondNotFound(w, notFoundMsg)
	case http.StatusConflict:
		RespondConflict(w, msgConflict)
	case http.StatusServiceUnavailable:
		RespondError(w, code, msgStorageRetryable)
	default:
		RespondInternalError(w)
	}
}
