package delete_payment

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/payments/models"
)

type PaymentService interface {
	Delete(ctx context.Context, actor domain.Actor, paymentID int64) (*models.RemovePaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
