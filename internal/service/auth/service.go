package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/EventsBookingService/internal/domain"
	userRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/user"
	"github.com/m04kA/EventsBookingService/internal/service/auth/models"
)

// Service аутентификация пользователей админки
type Service struct {
	userRepo     UserRepository
	tokens       TokenConfig
	bcryptCost   int
	dummyHash    []byte
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, tokens TokenConfig, bcryptCost int, logger Logger) (*Service, error) {
	// Хеш для сравнения при неизвестном логине: время ответа не выдает существование пользователя
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: NewService - dummy hash: %v", ErrInternal, err)
	}

	return &Service{
		userRepo:     userRepo,
		tokens:       tokens,
		bcryptCost:   bcryptCost,
		dummyHash:    dummy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Authenticate проверяет логин и пароль и выдает подписанный токен
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// 1. Ищем пользователя
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			s.logger.Warn("Authenticate: unknown username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %w", ErrInternal, err)
	}

	// 2. Сверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Authenticate: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()

	// 3. Фиксируем вход; ошибка не блокирует выдачу токена
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Authenticate: failed to update last login for user id=%d: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	// 4. Выдаем токен
	token, expiresAt, err := s.issueToken(user, now)
	if err != nil {
		s.logger.Error("Authenticate: failed to sign token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Authenticate - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Authenticate: user=%s role=%s logged in", user.Username, user.Role)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}

// HashPassword bcrypt-хеш пароля
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// EnsureBootstrapAdmin создает администратора, если таблица пользователей пуста
// Возвращает true, если пользователь был создан
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - count users: %w", ErrInternal, err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - hash password: %v", ErrInternal, err)
	}

	_, err = s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - create user: %w", ErrInternal, err)
	}

	s.logger.Info("EnsureBootstrapAdmin: created admin user=%s", username)
	return true, nil
}
