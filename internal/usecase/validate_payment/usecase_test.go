package validate_payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/payment"
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

type mockPaymentRepo struct {
	mock.Mock
	stored []*domain.PaymentRecord
}

// Create запоминает платеж и присваивает ему ID
func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, p)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	created := *p
	created.ID = int64(len(m.stored) + 1)
	m.stored = append(m.stored, &created)
	return &created, nil
}

// List возвращает записанные платежи
func (m *mockPaymentRepo) List(ctx context.Context, bookingID *string) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, bookingID)
	return m.stored, args.Error(0)
}

func (m *mockPaymentRepo) ExistsByReference(ctx context.Context, bookingID, reference string) (bool, error) {
	args := m.Called(ctx, bookingID, reference)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyPaymentValidated(ctx context.Context, b *domain.Booking, p *domain.PaymentRecord) error {
	return m.Called(ctx, b, p).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncPaymentsRecorded(paymentType, source string) {
	m.Called(paymentType, source)
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
	admin  = domain.Actor{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
	staff  = domain.Actor{UserID: 2, Username: "staff1", Role: domain.RoleStaff}
	viewer = domain.Actor{UserID: 3, Username: "viewer1", Role: domain.RoleViewer}
	today  = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	bookings *mockBookingRepo
	payments *mockPaymentRepo
	notifier *mockNotifier
	metrics  *mockMetrics
	tx       *fakeTxManager
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		payments: &mockPaymentRepo{},
		notifier: &mockNotifier{},
		metrics:  &mockMetrics{},
		tx:       &fakeTxManager{},
	}
	f.uc = NewUseCase(f.bookings, f.payments, f.tx, f.notifier, f.metrics, logger.Discard())
	f.uc.timeProvider = fixedTime{now: today}
	return f
}

func quoted(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          "BA-2025-0420",
		EventDate:   time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		TotalAmount: ptr.Ptr(decimal.NewFromInt(40000)),
		Status:      status,
	}
}

func validRequest() *Request {
	return &Request{
		BookingID:       "BA-2025-0420",
		ReferenceNumber: " GC-123456 ",
		Amount:          decimal.NewFromInt(5000),
		PaymentMethod:   "GCash",
		PaidBy:          ptr.Ptr("Maria Santos"),
	}
}

func TestUseCase_Execute_ConfirmsQuotedBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, "BA-2025-0420").Return(quoted(domain.StatusQuoteSent), nil)
	f.payments.On("ExistsByReference", mock.Anything, "BA-2025-0420", "GC-123456").Return(false, nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil, nil).Once()
	f.payments.On("List", mock.Anything, mock.Anything).Return(nil)
	f.metrics.On("IncPaymentsRecorded", "reservation", "validated").Once()
	f.metrics.On("IncStatusTransition", "QuoteSent", "Confirmed").Once()
	f.notifier.On("NotifyPaymentValidated", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), staff, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, "staff1", *resp.Booking.LastEditedBy)

	p := resp.Payment
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, domain.PaymentTypeReservation, p.PaymentType)
	assert.Equal(t, domain.PaymentMethodGCash, p.PaymentMethod)
	assert.Equal(t, "GC-123456", *p.ReferenceNumber)
	assert.Equal(t, "staff1", *p.ValidatedBy)
	assert.Equal(t, today, p.PaidAt)

	assert.True(t, decimal.NewFromInt(5000).Equal(resp.PaymentStatus.Summary.DownpaymentPaid))
	assert.Equal(t, 1, resp.PaymentStatus.Summary.PaymentCount)
	assert.Equal(t, 1, f.tx.calls)
	f.metrics.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_Execute_InquiryIsConfirmed(t *testing.T) {
	f := newFixture()
	b := quoted(domain.StatusInquiry)
	b.TotalAmount = nil
	f.bookings.On("GetForUpdate", mock.Anything, b.ID).Return(b, nil)
	f.payments.On("ExistsByReference", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
	f.payments.On("List", mock.Anything, mock.Anything).Return(nil)
	f.metrics.On("IncPaymentsRecorded", mock.Anything, mock.Anything)
	f.metrics.On("IncStatusTransition", "Inquiry", "Confirmed").Once()
	f.notifier.On("NotifyPaymentValidated", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), admin, validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.False(t, resp.PaymentStatus.Summary.IsFullyPaid)
}

func TestUseCase_Execute_ConfirmedStaysConfirmed(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, mock.Anything).Return(quoted(domain.StatusConfirmed), nil)
	f.payments.On("ExistsByReference", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("List", mock.Anything, mock.Anything).Return(nil)
	f.metrics.On("IncPaymentsRecorded", "downpayment", "validated")
	f.notifier.On("NotifyPaymentValidated", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("telegram down"))

	req := validRequest()
	req.PaymentType = ptr.Ptr("downpayment")

	resp, err := f.uc.Execute(context.Background(), staff, req)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.metrics.AssertNotCalled(t, "IncStatusTransition", mock.Anything, mock.Anything)
}

// Сценарий: пустой референс отклоняется до записи, статус не меняется
func TestUseCase_Execute_EmptyReference(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ReferenceNumber = "   "

	_, err := f.uc.Execute(context.Background(), staff, req)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "referenceNumber", ve.Field)
	assert.Equal(t, 0, f.tx.calls)
	assert.Empty(t, f.payments.stored)
	f.bookings.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"zero amount", func(r *Request) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *Request) { r.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"unknown method", func(r *Request) { r.PaymentMethod = "bitcoin" }, "paymentMethod"},
		{"unknown type", func(r *Request) { r.PaymentType = ptr.Ptr("tip") }, "paymentType"},
		{"sub-cent amount", func(r *Request) { r.Amount = decimal.RequireFromString("10.005") }, "amount"},
		{"amount too large", func(r *Request) { r.Amount = decimal.New(1, 10) }, "amount"},
		{"long transaction id", func(r *Request) { r.TransactionID = ptr.Ptr(strings.Repeat("T", 101)) }, "transactionId"},
		{"long paid by", func(r *Request) { r.PaidBy = ptr.Ptr(strings.Repeat("p", 256)) }, "paidBy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), staff, req)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestUseCase_Execute_DuplicateReference(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, mock.Anything).Return(quoted(domain.StatusQuoteSent), nil)
	f.payments.On("ExistsByReference", mock.Anything, "BA-2025-0420", "GC-123456").Return(true, nil)

	_, err := f.uc.Execute(context.Background(), staff, validRequest())

	assert.ErrorIs(t, err, ErrDuplicateReference)
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_DuplicateReferenceRace(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, mock.Anything).Return(quoted(domain.StatusQuoteSent), nil)
	f.payments.On("ExistsByReference", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(paymentRepo.ErrDuplicateReference)

	_, err := f.uc.Execute(context.Background(), staff, validRequest())

	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestUseCase_Execute_CancelledBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, mock.Anything).Return(quoted(domain.StatusCancelled), nil)

	_, err := f.uc.Execute(context.Background(), admin, validRequest())

	assert.ErrorIs(t, err, ErrBookingCancelled)
	f.payments.AssertNotCalled(t, "ExistsByReference", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ViewerRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), viewer, validRequest())

	assert.ErrorIs(t, err, domain.ErrAuthorization)
	assert.Equal(t, 0, f.tx.calls)
}

func TestUseCase_Execute_BookingNotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetForUpdate", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.uc.Execute(context.Background(), admin, validRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
