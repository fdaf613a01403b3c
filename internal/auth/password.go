package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrNameExists         = errors.New("user name already registered")
)

// UserStorage defines the user persistence operations the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy of the authenticator hashing with the given bcrypt cost.
// Tests use bcrypt.MinCost to keep runs fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := a.storage.GetUserByName(ctx, name)
	if err == nil && existing != nil {
		return nil, ErrNameExists
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, string(hashedPassword))

	if err := a.storage.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same name
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the name and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := a.storage.GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
