// Package service holds the application logic between the web handlers and
// the storage and generation layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/copywriter/internal/generator"
	"github.com/mmynk/copywriter/internal/metrics"
	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
)

// ErrEmptyProductName is returned when a product name is blank.
var ErrEmptyProductName = errors.New("product name is required")

// Generator produces description text for a product.
type Generator interface {
	Generate(ctx context.Context, productName, comment string, tier generator.Tier) (string, error)
}

// DescriptionService generates, stores and edits descriptions on behalf of
// their owners.
type DescriptionService struct {
	store     storage.DescriptionStore
	generator Generator
	metrics   *metrics.Metrics
}

// NewDescriptionService creates a DescriptionService. m may be nil.
func NewDescriptionService(store storage.DescriptionStore, gen Generator, m *metrics.Metrics) *DescriptionService {
	return &DescriptionService{
		store:     store,
		generator: gen,
		metrics:   m,
	}
}

// Create generates a description for the product and stores it under ownerID.
// tierValue is the raw form value; an unknown tier fails with
// generator.ErrInvalidTier before anything is generated.
func (s *DescriptionService) Create(ctx context.Context, ownerID, productName, comment, tierValue string) (*models.Description, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, ErrEmptyProductName
	}

	tier, err := generator.ParseTier(tierValue)
	if err != nil {
		s.observe("invalid", "invalid", 0)
		return nil, err
	}

	slog.Info("Create description request received",
		"owner_id", ownerID,
		"product_name", productName,
		"tier", tier.String(),
	)

	start := time.Now()
	text, err := s.generator.Generate(ctx, productName, comment, tier)
	if err != nil {
		s.observe("error", tier.String(), time.Since(start))
		slog.Error("Generation failed", "owner_id", ownerID, "tier", tier.String(), "error", err)
		return nil, err
	}
	s.observe("ok", tier.String(), time.Since(start))

	d := &models.Description{
		ProductName: productName,
		Comment:     comment,
		Text:        text,
		Tier:        tier.String(),
		OwnerID:     ownerID,
	}
	if err := s.store.CreateDescription(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save description: %w", err)
	}

	slog.Info("Description created", "description_id", d.ID, "owner_id", ownerID)
	return d, nil
}

// List returns every description owned by ownerID.
func (s *DescriptionService) List(ctx context.Context, ownerID string) ([]*models.Description, error) {
	return s.store.ListDescriptionsByOwner(ctx, ownerID)
}

// Get returns the description if it exists and belongs to ownerID.
// A description owned by someone else is reported as storage.ErrNotFound.
func (s *DescriptionService) Get(ctx context.Context, ownerID, id string) (*models.Description, error) {
	d, err := s.store.GetDescription(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != ownerID {
		slog.Warn("Description access denied", "description_id", id, "owner_id", d.OwnerID, "user_id", ownerID)
		return nil, fmt.Errorf("description %s: %w", id, storage.ErrNotFound)
	}
	return d, nil
}

// Update overwrites the product name and text of a description owned by ownerID.
// A blank product name is rejected with ErrEmptyProductName.
func (s *DescriptionService) Update(ctx context.Context, ownerID, id, productName, text string) error {
	if strings.TrimSpace(productName) == "" {
		return ErrEmptyProductName
	}
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.store.UpdateDescription(ctx, id, productName, text); err != nil {
		return err
	}

	slog.Info("Description updated", "description_id", id, "owner_id", ownerID)
	return nil
}

// Delete removes a description owned by ownerID.
// Deleting a missing ID is an error, not a no-op.
func (s *DescriptionService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.store.DeleteDescription(ctx, id); err != nil {
		return err
	}

	slog.Info("Description deleted", "description_id", id, "owner_id", ownerID)
	return nil
}

func (s *DescriptionService) observe(outcome, tier string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Generations.WithLabelValues(tier, outcome).Inc()
	if elapsed > 0 {
		s.metrics.GenerationDuration.WithLabelValues(tier).Observe(elapsed.Seconds())
	}
}
