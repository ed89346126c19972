package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	userRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/user"
	"github.com/m04kA/EventsBookingService/pkg/logger"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(*domain.User)
	return created, args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

var loginTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *mockUserRepo, *fixedTime) {
	t.Helper()
	repo := &mockUserRepo{}
	svc, err := NewService(repo, TokenConfig{
		Secret: []byte(strings.Repeat("s", 32)),
		TTL:    time.Hour,
		Issuer: "events-booking-service",
	}, bcrypt.MinCost, logger.Discard())
	require.NoError(t, err)

	clock := &fixedTime{now: loginTime}
	svc.timeProvider = clock
	return svc, repo, clock
}

func staffUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 7, Username: "staff1", Email: "staff@example.com", Role: domain.RoleStaff, PasswordHash: string(hash)}
}

func TestService_Authenticate(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("GetByUsername", mock.Anything, "staff1").Return(staffUser(t, "s3cret"), nil)
	repo.On("UpdateLastLogin", mock.Anything, int64(7), loginTime).Return(nil)

	resp, err := svc.Authenticate(context.Background(), "staff1", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, loginTime.Add(time.Hour), resp.ExpiresAt)
	assert.Equal(t, "staff", resp.User.Role)
	require.NotNil(t, resp.User.LastLogin)
	assert.Equal(t, loginTime, *resp.User.LastLogin)

	actor, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: 7, Username: "staff1", Role: domain.RoleStaff}, actor)
	repo.AssertExpectations(t)
}

func TestService_Authenticate_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("GetByUsername", mock.Anything, "staff1").Return(staffUser(t, "s3cret"), nil)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, userRepo.ErrUserNotFound)

	_, wrongPassword := svc.Authenticate(context.Background(), "staff1", "guess")
	_, unknownUser := svc.Authenticate(context.Background(), "ghost", "guess")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthenticated)
	repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Authenticate_EmptyInput(t *testing.T) {
	svc, repo, _ := newService(t)

	_, err := svc.Authenticate(context.Background(), " ", "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestService_ParseToken_Expired(t *testing.T) {
	svc, repo, clock := newService(t)
	repo.On("GetByUsername", mock.Anything, "staff1").Return(staffUser(t, "s3cret"), nil)
	repo.On("UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Authenticate(context.Background(), "staff1", "s3cret")
	require.NoError(t, err)

	clock.now = loginTime.Add(2 * time.Hour)
	_, err = svc.ParseToken(resp.Token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ParseToken_Rejects(t *testing.T) {
	svc, _, _ := newService(t)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "events-booking-service",
			ExpiresAt: jwt.NewNumericDate(loginTime.Add(time.Hour)),
		},
	}).SignedString([]byte(strings.Repeat("x", 32)))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:         "admin",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "events-booking-service"},
	}).SignedString(svc.tokens.Secret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"foreign secret": foreign,
		"no expiry":      noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestService_EnsureBootstrapAdmin(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "admin" && u.Role == domain.RoleAdmin &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("bootstrap")) == nil
	})).Return(&domain.User{ID: 1}, nil)

	created, err := svc.EnsureBootstrapAdmin(context.Background(), "admin", "bootstrap", "admin@example.com")

	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}

func TestService_EnsureBootstrapAdmin_SkipsWhenUsersExist(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.On("Count", mock.Anything).Return(2, nil)

	created, err := svc.EnsureBootstrapAdmin(context.Background(), "admin", "bootstrap", "")

	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_EnsureBootstrapAdmin_NotConfigured(t *testing.T) {
	svc, repo, _ := newService(t)

	created, err := svc.EnsureBootstrapAdmin(context.Background(), "", "", "")

	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Count", mock.Anything)
}
