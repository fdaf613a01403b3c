package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the login name of the user (unique).
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// NewUser creates a User with a fresh ID and creation timestamp.
func NewUser(name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
