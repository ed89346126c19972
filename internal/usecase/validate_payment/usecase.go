package validate_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/payment"
)

const metricsSource = "validated"

// UseCase use case для подтверждения платежа клиента по номеру референса
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute записывает подтвержденный платеж и подтверждает бронирование
// Inquiry и QuoteSent переходят в Confirmed, Confirmed остается как есть
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*Response, error) {
	// 1. Проверяем права до обращения к БД
	if err := actor.Authorize(domain.PermRecordPayment); err != nil {
		uc.logger.Warn("ValidatePayment: %v", err)
		return nil, err
	}

	uc.logger.Info("ValidatePayment: booking=%s, reference=%s, amount=%s, by=%s",
		req.BookingID, req.ReferenceNumber, req.Amount.String(), actor.Username)

	// 2. Валидация и сборка платежа
	now := uc.timeProvider.Now()
	payment, err := buildPayment(req, actor.Username, now)
	if err != nil {
		uc.logger.Warn("ValidatePayment: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		created  *domain.PaymentRecord
		payments []*domain.PaymentRecord
		from     domain.BookingStatus
	)

	// 3. Повторное чтение, проверка референса, запись платежа и смена статуса в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetForUpdate(txCtx, payment.BookingID)
		if err != nil {
			return uc.repoError(payment.BookingID, err)
		}
		from = booking.Status

		if booking.IsCancelled() {
			uc.logger.Warn("ValidatePayment: booking=%s is cancelled", booking.ID)
			return ErrBookingCancelled
		}

		exists, err := uc.paymentRepo.ExistsByReference(txCtx, booking.ID, *payment.ReferenceNumber)
		if err != nil {
			return uc.repoError(booking.ID, err)
		}
		if exists {
			uc.logger.Warn("ValidatePayment: booking=%s reference=%s already recorded", booking.ID, *payment.ReferenceNumber)
			return ErrDuplicateReference
		}

		created, err = uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			return uc.repoError(booking.ID, err)
		}

		if booking.Status == domain.StatusInquiry || booking.Status == domain.StatusQuoteSent {
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

	uc.logger.Info("ValidatePayment: payment id=%d recorded for booking=%s, status %s -> %s",
		created.ID, result.ID, from, result.Status)

	// 4. Уведомление после коммита; ошибка не отменяет платеж
	if err := uc.notifier.NotifyPaymentValidated(ctx, result, created); err != nil {
		uc.logger.Warn("ValidatePayment: failed to notify about payment id=%d: %v", created.ID, err)
	}

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
		uc.logger.Warn("ValidatePayment: booking id=%s not found", id)
		return ErrBookingNotFound
	case errors.Is(err, paymentRepo.ErrDuplicateReference):
		uc.logger.Warn("ValidatePayment: booking id=%s duplicate reference", id)
		return ErrDuplicateReference
	}
	uc.logger.Error("ValidatePayment: repository error for booking id=%s: %v", id, err)
	return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
}
