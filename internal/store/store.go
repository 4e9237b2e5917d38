// ABOUTME: Store interface and data types for tollgate persistence
// ABOUTME: Defines the User record and the UserStore interface used by the auth handlers

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering an email that is already taken
var ErrEmailExists = errors.New("email already registered")

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized by the HTTP layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore defines the persistence needed by register, login and profile handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CountUsers(ctx context.Context) (int, error)

	// Close releases any resources held by the store
	Close() error
}
