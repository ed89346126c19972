package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/pkg/logger"
)

type mockParser struct{ mock.Mock }

func (m *mockParser) ParseToken(token string) (domain.Actor, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Actor), args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.Called(method, path, status)
}

func actorEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(actor.Username + ":" + string(actor.Role)))
	})
}

func TestAuth(t *testing.T) {
	staff := domain.Actor{UserID: 2, Username: "staff1", Role: domain.RoleStaff}

	tests := []struct {
		name     string
		header   string
		setup    func(p *mockParser)
		wantCode int
		wantBody string
	}{
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(p *mockParser) {
				p.On("ParseToken", "good").Return(staff, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "staff1:staff",
		},
		{
			name:   "lowercase scheme",
			header: "bearer good",
			setup: func(p *mockParser) {
				p.On("ParseToken", "good").Return(staff, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "staff1:staff",
		},
		{name: "missing header", header: "", setup: func(*mockParser) {}, wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", setup: func(*mockParser) {}, wantCode: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer  ", setup: func(*mockParser) {}, wantCode: http.StatusUnauthorized},
		{
			name:   "rejected token",
			header: "Bearer expired",
			setup: func(p *mockParser) {
				p.On("ParseToken", "expired").Return(domain.Actor{}, errors.New("token is expired"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &mockParser{}
			tt.setup(parser)
			h := Auth(parser, logger.Discard())(actorEcho(t))

			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			parser.AssertExpectations(t)
		})
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &mockMetrics{}
	m.On("ObserveHTTPRequest", http.MethodGet, "/bookings/{bookingId}", "404").Once()

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/BA-2025-0001", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	m.AssertExpectations(t)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		const id = "0b0c8b4e-6f1e-4b53-9a51-2f6c1f1f4c1a"
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, id)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, w.Header().Get(HeaderRequestID))
	})

	t.Run("replaces garbage", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "<script>")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "nil map")
}
