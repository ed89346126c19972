package add_payment

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
	addPayment "github.com/m04kA/EventsBookingService/internal/usecase/add_payment"
)

type AddPaymentUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, req *addPayment.Request) (*addPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
