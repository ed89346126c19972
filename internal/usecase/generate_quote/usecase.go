package generate_quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
)

// UseCase use case для формирования и пересмотра котировки
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

// Execute выставляет сумму котировки и переводит бронирование в QuoteSent
// Допустимо из Inquiry (первая котировка) и QuoteSent (пересмотр)
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*Response, error) {
	// 1. Котировки формирует только администратор
	if err := actor.Authorize(domain.PermGenerateQuote); err != nil {
		uc.logger.Warn("GenerateQuote: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateQuote: booking=%s, amount=%s, by=%s", req.BookingID, req.Amount.String(), actor.Username)

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateQuote: validation failed: %v", err)
		return nil, err
	}

	var content *string
	if req.QuoteContent != nil {
		if trimmed := strings.TrimSpace(*req.QuoteContent); trimmed != "" {
			content = &trimmed
		}
	}

	now := uc.timeProvider.Now()
	var (
		result   *domain.Booking
		payments []*domain.PaymentRecord
		from     domain.BookingStatus
	)

	// 3. Блокируем бронирование, сверяем с оплатами и сохраняем в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetForUpdate(txCtx, req.BookingID)
		if err != nil {
			return uc.repoError(req.BookingID, err)
		}
		from = booking.Status

		payments, err = uc.paymentRepo.List(txCtx, &booking.ID)
		if err != nil {
			return uc.repoError(req.BookingID, err)
		}

		paid := domain.SummarizePayments(booking, payments).TotalPaid
		if req.Amount.LessThan(paid) && !req.AllowBelowPaid {
			uc.logger.Warn("GenerateQuote: booking=%s amount %s is below paid %s", booking.ID, req.Amount.String(), paid.String())
			return ErrTotalBelowPaid
		}

		if err := booking.ApplyQuote(req.Amount, content, actor.Username, now); err != nil {
			uc.logger.Warn("GenerateQuote: booking=%s: %v", booking.ID, err)
			return err
		}

		result, err = uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return uc.repoError(req.BookingID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncQuotesGenerated()
	if from != result.Status {
		uc.metrics.IncStatusTransition(string(from), string(result.Status))
	}

	uc.logger.Info("GenerateQuote: booking=%s quoted %s (was %s)", result.ID, req.Amount.String(), from)

	return &Response{
		Booking:       result,
		Payments:      payments,
		PaymentStatus: domain.BuildPaymentStatus(result, payments, now),
	}, nil
}

func (uc *UseCase) repoError(id string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("GenerateQuote: booking id=%s not found", id)
		return ErrBookingNotFound
	}
	uc.logger.Error("GenerateQuote: repository error for booking id=%s: %v", id, err)
	return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
}
