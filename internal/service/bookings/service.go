package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	"github.com/m04kA/EventsBookingService/pkg/retry"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	renderer     QuoteRenderer
	metrics      Metrics
	readPolicy   retry.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	renderer QuoteRenderer,
	metrics Metrics,
	readPolicy retry.Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		renderer:     renderer,
		metrics:      metrics,
		readPolicy:   readPolicy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование с платежами и статусом оплаты
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.BookingDetailsResponse, error) {
	if err := actor.Authorize(domain.PermViewBookings); err != nil {
		s.logger.Warn("GetByID: %v", err)
		return nil, err
	}

	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.Username)

	booking, payments, err := s.loadWithPayments(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.NewBookingDetails(booking, payments, s.timeProvider.Now()), nil
}

// PublicQuote клиентское представление котировки и статуса оплаты
// Доступно без авторизации: ID бронирования выступает ссылкой для клиента
func (s *Service) PublicQuote(ctx context.Context, id string) (*models.PublicQuoteResponse, error) {
	s.logger.Info("PublicQuote: fetching quote for booking id=%s", id)

	booking, payments, err := s.loadWithPayments(ctx, "PublicQuote", id)
	if err != nil {
		return nil, err
	}

	return models.NewPublicQuote(booking, payments, s.timeProvider.Now()), nil
}

// PublicQuotePDF котировка в формате PDF
func (s *Service) PublicQuotePDF(ctx context.Context, id string) ([]byte, error) {
	s.logger.Info("PublicQuotePDF: rendering quote for booking id=%s", id)

	booking, payments, err := s.loadWithPayments(ctx, "PublicQuotePDF", id)
	if err != nil {
		return nil, err
	}

	status := domain.BuildPaymentStatus(booking, payments, s.timeProvider.Now())
	pdf, err := s.renderer.RenderQuote(booking, status)
	if err != nil {
		s.logger.Error("PublicQuotePDF: failed to render quote for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: PublicQuotePDF - render: %v", ErrInternal, err)
	}

	return pdf, nil
}

// List получает бронирования по фильтру
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if err := actor.Authorize(domain.PermViewBookings); err != nil {
		s.logger.Warn("List: %v", err)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	var bookings []*domain.Booking
	err = s.readPolicy.Do(ctx, domain.IsRetryable, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.List(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%s", len(bookings), actor.Username)
	return models.FromDomainBookingList(bookings), nil
}

// Update изменяет поля бронирования
// Статус, сумма и архивные поля меняются только через операции жизненного цикла
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, patch domain.BookingPatch) (*models.BookingResponse, error) {
	// 1. Проверяем права до обращения к БД
	if err := actor.Authorize(domain.PermEditBooking); err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, err
	}
	if patch.TouchesQuote() {
		if err := actor.Authorize(domain.PermGenerateQuote); err != nil {
			s.logger.Warn("Update: quote edit denied: %v", err)
			return nil, err
		}
	}

	// 2. Валидация изменений
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: validation failed for booking id=%s: %v", id, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	var result *domain.Booking

	// 3. Перечитываем и сохраняем в одной транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return s.repoError("Update", id, err)
		}

		booking.ApplyPatch(patch)
		booking.MarkEdited(actor.Username, now)

		result, err = s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return s.repoError("Update", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: booking id=%s updated by %s", id, actor.Username)
	return models.FromDomainBooking(result), nil
}

// Delete удаляет бронирование вместе с платежами
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := actor.Authorize(domain.PermDeleteBooking); err != nil {
		s.logger.Warn("Delete: %v", err)
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return s.repoError("Delete", id, err)
	}

	s.logger.Info("Delete: booking id=%s deleted by %s", id, actor.Username)
	return nil
}

// Cancel переводит бронирование в Cancelled
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	if err := actor.Authorize(domain.PermCancelBooking); err != nil {
		s.logger.Warn("Cancel: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	var (
		result *domain.Booking
		from   domain.BookingStatus
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return s.repoError("Cancel", id, err)
		}

		from = booking.Status
		if err := booking.Cancel(actor.Username, now); err != nil {
			s.logger.Warn("Cancel: booking id=%s: %v", id, err)
			return err
		}

		result, err = s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return s.repoError("Cancel", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncStatusTransition(string(from), string(domain.StatusCancelled))
	s.logger.Info("Cancel: booking id=%s cancelled by %s (was %s)", id, actor.Username, from)
	return models.FromDomainBooking(result), nil
}

// Archive скрывает бронирование из списка по умолчанию
// Повторная архивация не является ошибкой
func (s *Service) Archive(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	return s.toggleArchive(ctx, actor, id, "Archive", func(b *domain.Booking) bool {
		return b.Archive(actor.Username, s.timeProvider.Now())
	})
}

// Restore возвращает бронирование из архива
func (s *Service) Restore(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	return s.toggleArchive(ctx, actor, id, "Restore", func(b *domain.Booking) bool {
		return b.Restore()
	})
}

func (s *Service) toggleArchive(
	ctx context.Context,
	actor domain.Actor,
	id, op string,
	apply func(b *domain.Booking) bool,
) (*models.BookingResponse, error) {
	if err := actor.Authorize(domain.PermArchiveBooking); err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, err
	}

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return s.repoError(op, id, err)
		}

		if !apply(booking) {
			s.logger.Info("%s: booking id=%s already in requested state", op, id)
			result = booking
			return nil
		}

		result, err = s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			return s.repoError(op, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%s archived=%t by %s", op, id, result.Archived, actor.Username)
	return models.FromDomainBooking(result), nil
}

// loadWithPayments читает бронирование и его платежи с повтором при временных ошибках
func (s *Service) loadWithPayments(ctx context.Context, op, id string) (*domain.Booking, []*domain.PaymentRecord, error) {
	var (
		booking  *domain.Booking
		payments []*domain.PaymentRecord
	)

	err := s.readPolicy.Do(ctx, domain.IsRetryable, func(ctx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		payments, err = s.paymentRepo.List(ctx, &id)
		return err
	})
	if err != nil {
		return nil, nil, s.repoError(op, id, err)
	}

	return booking, payments, nil
}

func (s *Service) repoError(op, id string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
