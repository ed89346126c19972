package scheduler

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/integrations/telegram"
)

const (
	deadlineDownpayment = "downpayment"
	deadlineFinal       = "final"
)

var urgencies = []domain.DeadlineUrgency{domain.DeadlineOverdue, domain.DeadlineDueSoon, domain.DeadlineUpcoming}

// SweepResult итог проверки дедлайнов
type SweepResult struct {
	Checked int
	// Counts количество неоплаченных дедлайнов: deadline -> urgency -> count
	Counts map[string]map[domain.DeadlineUrgency]int
	Digest telegram.Digest
}

// DeadlineSweeper ежедневная проверка дедлайнов оплаты по активным бронированиям
type DeadlineSweeper struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewDeadlineSweeper создает проверку дедлайнов
func NewDeadlineSweeper(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *DeadlineSweeper {
	return &DeadlineSweeper{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Run считает статус оплаты активных бронирований, обновляет метрики и отправляет сводку
func (s *DeadlineSweeper) Run(ctx context.Context) (*SweepResult, error) {
	now := s.timeProvider.Now()
	s.logger.Info("DeadlineSweep: started at %s", now.Format(domain.DateFormat))

	// 1. Активные неархивные бронирования
	archived := false
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		Statuses: domain.ActiveStatuses,
		Archived: &archived,
	})
	if err != nil {
		s.logger.Error("DeadlineSweep: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %w", ErrSweep, err)
	}

	// 2. Платежи всех бронирований одним запросом
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	payments, err := s.paymentRepo.ListByBookings(ctx, ids)
	if err != nil {
		s.logger.Error("DeadlineSweep: failed to list payments: %v", err)
		return nil, fmt.Errorf("%w: list payments: %w", ErrSweep, err)
	}

	// 3. Классификация дедлайнов
	result := &SweepResult{
		Counts: map[string]map[domain.DeadlineUrgency]int{
			deadlineDownpayment: {},
			deadlineFinal:       {},
		},
		Digest: telegram.Digest{Date: domain.DateOnly(now)},
	}

	for _, b := range bookings {
		if !b.HasPaymentDeadlines() || !b.IsQuoted() {
			continue
		}
		result.Checked++

		status := domain.BuildPaymentStatus(b, payments[b.ID], now)
		summary := status.Summary

		// Полная оплата закрывает и предоплату
		if summary.DownpaymentRemaining.IsPositive() && !summary.IsFullyPaid {
			result.add(b, deadlineDownpayment, status.DownpaymentStatus, summary.DownpaymentRemaining)
		}
		if summary.RemainingBalance.IsPositive() {
			result.add(b, deadlineFinal, status.FinalPaymentStatus, summary.RemainingBalance)
		}
	}

	sortItems(result.Digest.Overdue)
	sortItems(result.Digest.DueSoon)

	// 4. Метрики выставляются для всех комбинаций, чтобы обнулять старые значения
	for _, deadline := range []string{deadlineDownpayment, deadlineFinal} {
		for _, urgency := range urgencies {
			s.metrics.SetDeadlineCount(deadline, string(urgency), result.Counts[deadline][urgency])
		}
	}

	s.logger.Info("DeadlineSweep: checked %d bookings, overdue=%d, due soon=%d",
		result.Checked, len(result.Digest.Overdue), len(result.Digest.DueSoon))

	// 5. Сводка сотрудникам; ошибка отправки не отменяет проверку
	if err := s.notifier.SendDeadlineDigest(ctx, result.Digest); err != nil {
		s.logger.Warn("DeadlineSweep: failed to send digest: %v", err)
	}

	return result, nil
}

func (r *SweepResult) add(b *domain.Booking, deadline string, status domain.DeadlineStatus, outstanding decimal.Decimal) {
	r.Counts[deadline][status.Status]++

	item := telegram.DigestItem{
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		EventDate:    b.EventDate,
		Deadline:     deadline,
		Label:        status.Label,
		Outstanding:  outstanding,
	}

	switch status.Status {
	case domain.DeadlineOverdue:
		r.Digest.Overdue = append(r.Digest.Overdue, item)
	case domain.DeadlineDueSoon:
		r.Digest.DueSoon = append(r.Digest.DueSoon, item)
	}
}

// sortItems ближайшие мероприятия первыми
func sortItems(items []telegram.DigestItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].EventDate.Equal(items[j].EventDate) {
			return items[i].EventDate.Before(items[j].EventDate)
		}
		return items[i].BookingID < items[j].BookingID
	})
}
