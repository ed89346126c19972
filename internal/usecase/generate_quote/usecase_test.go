package generate_quote

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	"github.com/m04kA/EventsBookingService/pkg/logger"
	"github.com/m04kA/EventsBookingService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

// Update возвращает переданное бронирование, если ошибка не задана
func (m *mockBookingRepo) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return b, nil
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) List(ctx context.Context, bookingID *string) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, bookingID)
	p, _ := args.Get(0).([]*domain.PaymentRecord)
	return p, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncQuotesGenerated() {
	m.Called()
}

func (m *mockMetrics) IncStatusTransition(from, to string) {
	m.Called(from, to)
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	admin = domain.Actor{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
	staff = domain.Actor{UserID: 2, Username: "staff1", Role: domain.RoleStaff}
	today = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	bookings *mockBookingRepo
	payments *mockPaymentRepo
	metrics  *mockMetrics
	tx       *fakeTxManager
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		payments: &mockPaymentRepo{},
		metrics:  &mockMetrics{},
		tx:       &fakeTxManager{},
	}
	f.uc = NewUseCase(f.bookings, f.payments, f.tx, f.metrics, logger.Discard())
	f.uc.timeProvider = fixedTime{now: today}
	return f
}

func inquiry() *domain.Booking {
	return &domain.Booking{
		ID:            "BA-2025-0420",
		CustomerName:  "Maria Santos",
		CustomerEmail: "maria@example.com",
		EventDate:     time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		EventType:     "Wedding",
		Venue:         "Manila Hotel",
		Status:        domain.StatusInquiry,
	}
}

func payment(amount int64, t domain.PaymentType) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		BookingID:     "BA-2025-0420",
		Amount:        decimal.NewFromInt(amount),
		PaymentType:   t,
		PaymentMethod: domain.PaymentMethodGCash,
	}
}

// Сценарий: первая котировка переводит Inquiry в QuoteSent
func TestUseCase_Execute_FirstQuote(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, "BA-2025-0420").Return(inquiry(), nil)
	f.payments.On("List", mock.Anything, mock.Anything).Return([]*domain.PaymentRecord{}, nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
	f.metrics.On("IncQuotesGenerated").Once()
	f.metrics.On("IncStatusTransition", "Inquiry", "QuoteSent").Once()

	resp, err := f.uc.Execute(context.Background(), admin, &Request{
		BookingID:    "BA-2025-0420",
		Amount:       decimal.NewFromInt(40000),
		QuoteContent: ptr.Ptr("  Lights, sound, LED wall  "),
	})

	require.NoError(t, err)
	b := resp.Booking
	assert.Equal(t, domain.StatusQuoteSent, b.Status)
	assert.True(t, decimal.NewFromInt(40000).Equal(*b.TotalAmount))
	assert.Equal(t, "Lights, sound, LED wall", *b.QuoteContent)
	assert.Equal(t, "admin", *b.LastEditedBy)
	assert.Equal(t, today, *b.LastEditedAt)
	assert.True(t, decimal.NewFromInt(20000).Equal(resp.PaymentStatus.Summary.DownpaymentAmount))
	assert.Equal(t, time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), resp.PaymentStatus.Deadlines.DownpaymentDeadline)
	assert.Equal(t, 1, f.tx.calls)
	f.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_Requote(t *testing.T) {
	f := newFixture()
	b := inquiry()
	b.Status = domain.StatusQuoteSent
	b.TotalAmount = ptr.Ptr(decimal.NewFromInt(40000))
	b.QuoteContent = ptr.Ptr("original package")
	f.bookings.On("GetForUpdate", mock.Anything, b.ID).Return(b, nil)
	f.payments.On("List", mock.Anything, mock.Anything).Return([]*domain.PaymentRecord{payment(10000, domain.PaymentTypeReservation)}, nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
	f.metrics.On("IncQuotesGenerated").Once()

	resp, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: b.ID, Amount: decimal.NewFromInt(45000)})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteSent, resp.Booking.Status)
	assert.True(t, decimal.NewFromInt(45000).Equal(*resp.Booking.TotalAmount))
	assert.Equal(t, "original package", *resp.Booking.QuoteContent)
	f.metrics.AssertNotCalled(t, "IncStatusTransition", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_BelowPaid(t *testing.T) {
	b := inquiry()
	b.Status = domain.StatusQuoteSent
	b.TotalAmount = ptr.Ptr(decimal.NewFromInt(40000))
	paid := []*domain.PaymentRecord{payment(20000, domain.PaymentTypeDownpayment), payment(5000, domain.PaymentTypePartial)}

	t.Run("rejected without override", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetForUpdate", mock.Anything, b.ID).Return(b, nil)
		f.payments.On("List", mock.Anything, mock.Anything).Return(paid, nil)

		_, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: b.ID, Amount: decimal.NewFromInt(24999)})

		assert.ErrorIs(t, err, ErrTotalBelowPaid)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("accepted with override", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetForUpdate", mock.Anything, b.ID).Return(b, nil)
		f.payments.On("List", mock.Anything, mock.Anything).Return(paid, nil)
		f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
		f.metrics.On("IncQuotesGenerated")

		resp, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: b.ID, Amount: decimal.NewFromInt(20000), AllowBelowPaid: true})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5000).Equal(resp.PaymentStatus.Summary.Overpayment))
	})
}

func TestUseCase_Execute_InvalidStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			b := inquiry()
			b.Status = status
			f.bookings.On("GetForUpdate", mock.Anything, b.ID).Return(b, nil)
			f.payments.On("List", mock.Anything, mock.Anything).Return([]*domain.PaymentRecord{}, nil)

			_, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: b.ID, Amount: decimal.NewFromInt(1000)})

			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_StaffRejectedBeforeStorage(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), staff, &Request{BookingID: "BA-2025-0420", Amount: decimal.NewFromInt(1000)})

	assert.ErrorIs(t, err, domain.ErrAuthorization)
	assert.Equal(t, 0, f.tx.calls)
	f.bookings.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-500)},
		{"sub-cent", decimal.RequireFromString("45000.001")},
		{"too large", decimal.New(1, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: "BA-2025-0420", Amount: tt.amount})

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "amount", ve.Field)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, "BA-2025-9999").Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.uc.Execute(context.Background(), admin, &Request{BookingID: "BA-2025-9999", Amount: decimal.NewFromInt(1000)})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
