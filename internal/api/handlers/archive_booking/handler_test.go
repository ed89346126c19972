package archive_booking

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

var admin = domain.Actor{UserID: 1, Username: "admin", Role: domain.RoleAdmin}

type mockService struct{ mock.Mock }

func (m *mockService) Archive(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *mockService) Restore(ctx context.Context, actor domain.Actor, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func router(h *Handler, actor domain.Actor) http.Handler {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithActor(req.Context(), actor)))
		})
	})
	r.HandleFunc("/bookings/{bookingId}/archive", h.Archive).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{bookingId}/archive", h.Restore).Methods(http.MethodDelete)
	return r
}

func TestHandler_ArchiveAndRestore(t *testing.T) {
	svc := &mockService{}
	svc.On("Archive", mock.Anything, admin, "BA-2025-0001").
		Return(&models.BookingResponse{ID: "BA-2025-0001", Archived: true}, nil)
	svc.On("Restore", mock.Anything, admin, "BA-2025-0001").
		Return(&models.BookingResponse{ID: "BA-2025-0001", Archived: false}, nil)
	r := router(NewHandler(svc, logger.Discard()), admin)

	for method, wantArchived := range map[string]bool{http.MethodPost: true, http.MethodDelete: false} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/bookings/BA-2025-0001/archive", nil))

		require.Equal(t, http.StatusOK, w.Code, method)
		var resp models.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, wantArchived, resp.Archived, method)
	}
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	staff := domain.Actor{UserID: 2, Username: "staff1", Role: domain.RoleStaff}
	svc := &mockService{}
	svc.On("Archive", mock.Anything, staff, "BA-2025-0001").
		Return(nil, &domain.AuthorizationError{Role: domain.RoleStaff, Permission: domain.PermArchiveBooking})
	svc.On("Restore", mock.Anything, staff, "BA-2025-0002").Return(nil, bookings.ErrBookingNotFound)
	r := router(NewHandler(svc, logger.Discard()), staff)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings/BA-2025-0001/archive", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/bookings/BA-2025-0002/archive", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
