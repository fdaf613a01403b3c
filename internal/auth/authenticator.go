package auth

import (
	"context"

	"github.com/mmynk/copywriter/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The web layer depends on this rather than on a concrete hashing scheme.
type Authenticator interface {
	// Register creates a new user account with the given name and password.
	// Returns ErrNameExists if the name is already taken.
	Register(ctx context.Context, name, password string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if successful.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, name, password string) (*models.User, error)
}
