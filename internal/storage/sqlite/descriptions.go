package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
)

const descriptionColumns = `id, product_name, comment, text, tier, owner_id, created_at, updated_at`

// CreateDescription persists a new description to the database.
func (s *SQLiteStore) CreateDescription(ctx context.Context, d *models.Description) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().Unix()
	}
	if d.UpdatedAt == 0 {
		d.UpdatedAt = d.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO descriptions (`+descriptionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProductName, d.Comment, d.Text, d.Tier, d.OwnerID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert description: %w", err)
	}

	return nil
}

// GetDescription retrieves a description by ID.
func (s *SQLiteStore) GetDescription(ctx context.Context, id string) (*models.Description, error) {
	d := &models.Description{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+descriptionColumns+` FROM descriptions WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.ProductName, &d.Comment, &d.Text, &d.Tier, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("description %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get description: %w", err)
	}

	return d, nil
}

// ListDescriptionsByOwner retrieves all descriptions for a user in insertion order.
func (s *SQLiteStore) ListDescriptionsByOwner(ctx context.Context, ownerID string) ([]*models.Description, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+descriptionColumns+` FROM descriptions WHERE owner_id = ? ORDER BY rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptions by owner: %w", err)
	}
	defer rows.Close()

	var descriptions []*models.Description
	for rows.Next() {
		d := &models.Description{}
		if err := rows.Scan(&d.ID, &d.ProductName, &d.Comment, &d.Text, &d.Tier,
			&d.OwnerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan description: %w", err)
		}
		descriptions = append(descriptions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate descriptions: %w", err)
	}

	return descriptions, nil
}

// UpdateDescription overwrites the product name and text of a description.
// Comment, tier and owner are left untouched.
func (s *SQLiteStore) UpdateDescription(ctx context.Context, id, productName, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE descriptions SET product_name = ?, text = ?, updated_at = ? WHERE id = ?`,
		productName, text, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}

	return requireAffected(res, id)
}

// DeleteDescription removes a description by ID.
func (s *SQLiteStore) DeleteDescription(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM descriptions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete description: %w", err)
	}

	return requireAffected(res, id)
}

// requireAffected maps a zero-row result to storage.ErrNotFound.
func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("description %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
