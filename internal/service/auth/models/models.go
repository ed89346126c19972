package models

import (
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// UserResponse данные пользователя без хеша пароля
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromDomainUser конвертирует пользователя в DTO
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		LastLogin: u.LastLogin,
	}
}
