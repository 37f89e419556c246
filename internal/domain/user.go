// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Roles carried in session claims. Only RoleAdmin is ever checked.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepository defines the port for user persistence operations.
// Lookups return ErrNotFound when no row matches; Create returns
// ErrConflict when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, email, role string) error
}
