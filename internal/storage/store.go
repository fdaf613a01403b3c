// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/copywriter/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrDuplicate if the name is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByName retrieves a user by login name.
	// Returns ErrNotFound if no such user exists.
	GetUserByName(ctx context.Context, name string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// DescriptionStore defines persistence operations for generated descriptions.
type DescriptionStore interface {
	// CreateDescription persists a new description.
	// The ID and timestamps are populated by the store when unset.
	CreateDescription(ctx context.Context, d *models.Description) error

	// GetDescription retrieves a description by ID.
	// Returns ErrNotFound if it does not exist.
	GetDescription(ctx context.Context, id string) (*models.Description, error)

	// ListDescriptionsByOwner returns all descriptions owned by ownerID
	// in insertion order.
	ListDescriptionsByOwner(ctx context.Context, ownerID string) ([]*models.Description, error)

	// UpdateDescription overwrites the product name and text of a description.
	// Returns ErrNotFound if it does not exist.
	UpdateDescription(ctx context.Context, id, productName, text string) error

	// DeleteDescription removes a description permanently.
	// Returns ErrNotFound if it does not exist, including on a repeated delete.
	DeleteDescription(ctx context.Context, id string) error
}

// Store combines all storage operations.
// This abstraction allows swapping storage backends without changing
// the service layer.
type Store interface {
	UserStore
	DescriptionStore

	// Close releases any resources held by the store.
	Close() error
}
