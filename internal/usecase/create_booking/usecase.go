package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
)

// UseCase use case для приема новой заявки
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	metrics      Metrics
	newID        func(year int) string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		metrics:      metrics,
		newID:        domain.NewBookingID,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе Inquiry
// При коллизии ID генерирует новый, не более MaxBookingIDAttempts раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, eventDate=%s, eventType=%s",
		req.CustomerEmail, req.EventDate.Format(domain.DateFormat), req.EventType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата мероприятия не в прошлом
	now := uc.timeProvider.Now()
	if err := validateEventDate(req.EventDate, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Собираем бронирование
	booking := &domain.Booking{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: trimOptional(req.CustomerPhone),
		EventDate:     domain.DateOnly(req.EventDate),
		EventType:     strings.TrimSpace(req.EventType),
		Venue:         strings.TrimSpace(req.Venue),
		CeremonyVenue: trimOptional(req.CeremonyVenue),
		GuestCount:    req.GuestCount,
		Services:      req.Services,
		Notes:         trimOptional(req.Notes),
		Status:        domain.StatusInquiry,
	}
	booking.Services.LiveBandRider = trimOptional(req.Services.LiveBandRider)

	// 4. Сохраняем, перегенерируя ID при коллизии
	var created *domain.Booking
	for attempt := 1; attempt <= domain.MaxBookingIDAttempts; attempt++ {
		booking.ID = uc.newID(now.Year())

		var err error
		created, err = uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, bookingRepo.ErrDuplicateID) {
			uc.logger.Warn("CreateBooking: id=%s already taken, attempt %d/%d", booking.ID, attempt, domain.MaxBookingIDAttempts)
			continue
		}

		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}

	if created == nil {
		uc.logger.Error("CreateBooking: %v", ErrIDExhausted)
		return nil, ErrIDExhausted
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 5. Уведомляем сотрудников; ошибка уведомления не отменяет заявку
	if err := uc.notifier.NotifyNewInquiry(ctx, created); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify about booking id=%s: %v", created.ID, err)
	}

	return &Response{Booking: created}, nil
}
