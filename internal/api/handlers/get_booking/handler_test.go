package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
	"github.com/m04kA/EventsBookingService/pkg/logger"
)

var viewer = domain.Actor{UserID: 3, Username: "viewer1", Role: domain.RoleViewer}

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.BookingDetailsResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingDetailsResponse), args.Error(1)
}

func get(h *Handler, id string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), viewer))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, viewer, "BA-2025-0001").Return(&models.BookingDetailsResponse{
		Booking:  models.BookingResponse{ID: "BA-2025-0001", Status: "QuoteSent"},
		Payments: []models.PaymentResponse{{ID: 7, BookingID: "BA-2025-0001", Amount: 20000}},
		PaymentStatus: models.PaymentStatusResponse{
			Summary: models.PaymentSummaryResponse{TotalAmount: 40000, TotalPaid: 20000, RemainingBalance: 20000},
		},
	}, nil)

	w := get(NewHandler(svc, logger.Discard()), "BA-2025-0001", true)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BA-2025-0001", resp.Booking.ID)
	assert.Len(t, resp.Payments, 1)
	assert.Equal(t, 20000.0, resp.PaymentStatus.Summary.RemainingBalance)
}

func TestHandler_NotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, viewer, "BA-2025-9999").Return(nil, bookings.ErrBookingNotFound)

	w := get(NewHandler(svc, logger.Discard()), "BA-2025-9999", true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), msgNotFound)
}

func TestHandler_MissingActor(t *testing.T) {
	svc := &mockService{}

	w := get(NewHandler(svc, logger.Discard()), "BA-2025-0001", false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Forbidden(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, viewer, "BA-2025-0001").
		Return(nil, &domain.AuthorizationError{Role: domain.RoleViewer, Permission: domain.PermViewBookings})

	w := get(NewHandler(svc, logger.Discard()), "BA-2025-0001", true)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
