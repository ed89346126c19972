package validate_payment

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
	validatePayment "github.com/m04kA/EventsBookingService/internal/usecase/validate_payment"
)

type ValidatePaymentUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, req *validatePayment.Request) (*validatePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
