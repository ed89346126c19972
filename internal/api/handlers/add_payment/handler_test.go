package add_payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/api/handlers"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	addPayment "github.com/m04kA/EventsBookingService/internal/usecase/add_payment"
	"github.com/m04kA/EventsBookingService/pkg/logger"
)

var staff = domain.Actor{UserID: 2, Username: "staff1", Role: domain.RoleStaff}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, actor domain.Actor, req *addPayment.Request) (*addPayment.Response, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*addPayment.Response), args.Error(1)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/BA-2025-0001/payments", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": "BA-2025-0001"})
	r = r.WithContext(middleware.WithActor(r.Context(), staff))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_Created(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(40000)
	booking := &domain.Booking{
		ID:          "BA-2025-0001",
		EventDate:   time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusQuoteSent,
		TotalAmount: &total,
	}
	payment := &domain.PaymentRecord{
		ID:            11,
		BookingID:     booking.ID,
		Amount:        decimal.NewFromInt(20000),
		PaymentType:   domain.PaymentTypeDownpayment,
		PaymentMethod: domain.PaymentMethodGCash,
		PaidAt:        now,
	}
	payments := []*domain.PaymentRecord{payment}

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, staff, mock.MatchedBy(func(req *addPayment.Request) bool {
		return req.BookingID == "BA-2025-0001" && req.Amount.Equal(decimal.NewFromInt(20000)) &&
			req.PaymentType == "downpayment" && req.PaymentMethod == "gcash" && req.PaidAt == nil
	})).Return(&addPayment.Response{
		Booking:       booking,
		Payment:       payment,
		Payments:      payments,
		PaymentStatus: domain.BuildPaymentStatus(booking, payments, now),
	}, nil)

	w := post(NewHandler(uc, logger.Discard()), `{"amount":20000,"paymentType":"downpayment","paymentMethod":"gcash"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp PaymentRecordedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.Payment.ID)
	assert.Equal(t, 20000.0, resp.PaymentStatus.Summary.TotalPaid)
	assert.Equal(t, 20000.0, resp.PaymentStatus.Summary.RemainingBalance)
	assert.False(t, resp.PaymentStatus.Summary.IsFullyPaid)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"cancelled", addPayment.ErrBookingCancelled, http.StatusConflict},
		{"duplicate", addPayment.ErrDuplicateReference, http.StatusConflict},
		{"not found", addPayment.ErrBookingNotFound, http.StatusNotFound},
		{"bad method", domain.NewValidationError("paymentMethod", `unknown payment method "wire"`), http.StatusBadRequest},
		{"viewer", &domain.AuthorizationError{Role: domain.RoleViewer, Permission: domain.PermRecordPayment}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, staff, mock.Anything).Return(nil, tt.err)

			w := post(NewHandler(uc, logger.Discard()), `{"amount":100,"paymentType":"full","paymentMethod":"wire"}`)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandler_MissingType(t *testing.T) {
	uc := &mockUseCase{}

	w := post(NewHandler(uc, logger.Discard()), `{"amount":100,"paymentMethod":"gcash"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "paymentType", body.Field)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}
