package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// TokenConfig параметры подписи токенов
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Claims содержимое токена сессии
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(u *domain.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.tokens.TTL)

	claims := Claims{
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    s.tokens.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokens.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает автора запроса
func (s *Service) ParseToken(token string) (domain.Actor, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return s.tokens.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.tokens.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil || !parsed.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}

	return domain.Actor{UserID: userID, Username: claims.Username, Role: role}, nil
}
