package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, name, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %q: %w", user.Name, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByName retrieves a user by their login name.
func (s *SQLiteStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	query := `
		SELECT id, name, password_hash, created_at
		FROM users
		WHERE name = ?
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
