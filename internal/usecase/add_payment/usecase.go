package add_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/payment"
)

const metricsSource = "manual"

// UseCase use case для ручной записи платежа сотрудником
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute записывает платеж по любому неотмененному бронированию
// Платеж типа full по бронированию в QuoteSent подтверждает его
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*Response, error) {
	// 1. Проверяем права до обращения к БД
	if err := actor.Authorize(domain.PermRecordPayment); err != nil {
		uc.logger.Warn("AddPayment: %v", err)
		return nil, err
	}

	uc.logger.Info("AddPayment: booking=%s, type=%s, amount=%s, by=%s",
		req.BookingID, req.PaymentType, req.Amount.String(), actor.Username)

	// 2. Валидация и сборка платежа
	now := uc.timeProvider.Now()
	payment, err := buildPayment(req, now)
	if err != nil {
		uc.logger.Warn("AddPayment: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		created  *domain.PaymentRecord
		payments []*domain.PaymentRecord
		from     domain.BookingStatus
	)

	// 3. Запись платежа и автоподтверждение в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetForUpdate(txCtx, payment.BookingID)
		if err != nil {
			return uc.repoError(payment.BookingID, err)
		}
		from = booking.Status

		if booking.IsCancelled() {
			uc.logger.Warn("AddPayment: booking=%s is cancelled", booking.ID)
			return ErrBookingCancelled
		}

		created, err = uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			return uc.repoError(booking.ID, err)
		}

		if created.PaymentType == domain.PaymentTypeFull && booking.Status == domain.StatusQuoteSent {
			if err := booking.TransitionTo(domain.StatusConfirmed); err != nil {
				return err
			}
			booking.MarkEdited(actor.Username, now)

			booking, err = uc.bookingRepo.Update(txCtx, booking)
			if err != nil {
				return uc.repoError(payment.BookingID, err)
			}
		}
		result = booking

		payments, err = uc.paymentRepo.List(txCtx, &booking.ID)
		if err != nil {
			return uc.repoError(booking.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncPaymentsRecorded(string(created.PaymentType), metricsSource)
	if from != result.Status {
		uc.metrics.IncStatusTransition(string(from), string(result.Status))
	}

	uc.logger.Info("AddPayment: payment id=%d recorded for booking=%s, status %s -> %s",
		created.ID, result.ID, from, result.Status)

	return &Response{
		Booking:       result,
		Payment:       created,
		Payments:      payments,
		PaymentStatus: domain.BuildPaymentStatus(result, payments, now),
	}, nil
}

func (uc *UseCase) repoError(id string, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound), errors.Is(err, paymentRepo.ErrBookingNotFound):
		uc.logger.Warn("AddPayment: booking id=%s not found", id)
		return ErrBookingNotFound
	case errors.Is(err, paymentRepo.ErrDuplicateReference):
		uc.logger.Warn("AddPayment: booking id=%s duplicate reference", id)
		return ErrDuplicateReference
	}
	uc.logger.Error("AddPayment: repository error for booking id=%s: %v", id, err)
	return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
}
