package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/payment"
	bookingModels "github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	"github.com/m04kA/EventsBookingService/internal/service/payments/models"
	"github.com/m04kA/EventsBookingService/pkg/retry"
)

// Service сервис для чтения и удаления платежей
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	readPolicy  retry.Policy
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	readPolicy retry.Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		readPolicy:  readPolicy,
		logger:      logger,
	}
}

// List получает платежи бронирования, или все платежи если bookingID не указан
func (s *Service) List(ctx context.Context, actor domain.Actor, bookingID *string) (*bookingModels.PaymentListResponse, error) {
	if err := actor.Authorize(domain.PermViewBookings); err != nil {
		s.logger.Warn("List: %v", err)
		return nil, err
	}

	var payments []*domain.PaymentRecord
	err := s.readPolicy.Do(ctx, domain.IsRetryable, func(ctx context.Context) error {
		var err error
		payments, err = s.paymentRepo.List(ctx, bookingID)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d payments", len(payments))
	return &bookingModels.PaymentListResponse{Payments: bookingModels.FromDomainPaymentList(payments)}, nil
}

// Delete удаляет платеж и возвращает пересчитанную сводку по бронированию
// Статус бронирования не откатывается, даже если оно перестало быть полностью оплаченным
func (s *Service) Delete(ctx context.Context, actor domain.Actor, paymentID int64) (*models.RemovePaymentResponse, error) {
	// 1. Проверяем права до обращения к БД
	if err := actor.Authorize(domain.PermRemovePayment); err != nil {
		s.logger.Warn("Delete: %v", err)
		return nil, err
	}

	var result *models.RemovePaymentResponse

	// 2. Удаление и пересчет в одной транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Находим платеж, чтобы узнать бронирование
		payment, err := s.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			return s.repoError("Delete", paymentID, err)
		}

		// 2.2. Блокируем бронирование на время пересчета
		booking, err := s.bookingRepo.GetForUpdate(txCtx, payment.BookingID)
		if err != nil {
			return s.repoError("Delete", paymentID, err)
		}

		// 2.3. Удаляем платеж
		if err := s.paymentRepo.Delete(txCtx, payment.BookingID, paymentID); err != nil {
			return s.repoError("Delete", paymentID, err)
		}

		// 2.4. Пересчитываем сводку по оставшимся платежам
		remaining, err := s.paymentRepo.List(txCtx, &payment.BookingID)
		if err != nil {
			return s.repoError("Delete", paymentID, err)
		}

		result = &models.RemovePaymentResponse{
			PaymentID:     paymentID,
			BookingID:     booking.ID,
			BookingStatus: string(booking.Status),
			Summary:       bookingModels.FromPaymentSummary(domain.SummarizePayments(booking, remaining)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Delete: payment id=%d removed from booking id=%s by %s", paymentID, result.BookingID, actor.Username)
	return result, nil
}

func (s *Service) repoError(op string, paymentID int64, err error) error {
	switch {
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		s.logger.Warn("%s: payment id=%d not found", op, paymentID)
		return ErrPaymentNotFound
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking of payment id=%d not found", op, paymentID)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for payment id=%d: %v", op, paymentID, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
