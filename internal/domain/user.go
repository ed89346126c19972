package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role of an administrative user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// ParseRole converts a raw string into a Role
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", NewValidationError("role", fmt.Sprintf("unknown role %q", raw))
	}
	return r, nil
}

// Permission is a guarded action
type Permission string

const (
	PermViewBookings   Permission = "view bookings"
	PermEditBooking    Permission = "edit bookings"
	PermDeleteBooking  Permission = "delete bookings"
	PermGenerateQuote  Permission = "generate quotes"
	PermCancelBooking  Permission = "cancel bookings"
	PermArchiveBooking Permission = "archive bookings"
	PermRecordPayment  Permission = "record payments"
	PermRemovePayment  Permission = "remove payments"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermViewBookings:   true,
		PermEditBooking:    true,
		PermDeleteBooking:  true,
		PermGenerateQuote:  true,
		PermCancelBooking:  true,
		PermArchiveBooking: true,
		PermRecordPayment:  true,
		PermRemovePayment:  true,
	},
	RoleStaff: {
		PermViewBookings:  true,
		PermEditBooking:   true,
		PermCancelBooking: true,
		PermRecordPayment: true,
		PermRemovePayment: true,
	},
	RoleViewer: {
		PermViewBookings: true,
	},
}

// Can returns true if the role grants p
func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}

// User is an administrative account
type User struct {
	ID           int64
	Username     string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Actor is the authenticated identity performing an operation
type Actor struct {
	UserID   int64
	Username string
	Role     Role
}

// Authorize returns an *AuthorizationError if the actor lacks p
func (a Actor) Authorize(p Permission) error {
	if !a.Role.Can(p) {
		return &AuthorizationError{Role: a.Role, Permission: p}
	}
	return nil
}
