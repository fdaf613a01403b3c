package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/copywriter/internal/generator"
	"github.com/mmynk/copywriter/internal/metrics"
	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/storage"
	"github.com/mmynk/copywriter/internal/storage/sqlite"
)

type stubGenerator struct {
	calls int
	tiers []generator.Tier
	text  string
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, productName, _ string, tier generator.Tier) (string, error) {
	g.calls++
	g.tiers = append(g.tiers, tier)
	if g.err != nil {
		return "", g.err
	}
	return g.text + " " + productName, nil
}

type testEnv struct {
	svc     *DescriptionService
	store   *sqlite.SQLiteStore
	gen     *stubGenerator
	metrics *metrics.Metrics
	alice   *models.User
	bob     *models.User
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	alice := models.NewUser("alice", "hash")
	bob := models.NewUser("bob", "hash")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	gen := &stubGenerator{text: "Generated"}
	m := metrics.New()

	return &testEnv{
		svc:     NewDescriptionService(store, gen, m),
		store:   store,
		gen:     gen,
		metrics: m,
		alice:   alice,
		bob:     bob,
	}
}

func TestCreate_GeneratesAndStores(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	d, err := env.svc.Create(ctx, env.alice.ID, "chair", "ergonomic, wood", "short")
	require.NoError(t, err)

	assert.Equal(t, "Generated chair", d.Text)
	assert.Equal(t, "short", d.Tier)
	assert.Equal(t, []generator.Tier{generator.TierShort}, env.gen.tiers)

	list, err := env.svc.List(ctx, env.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, d, list[0])

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Generations.WithLabelValues("short", "ok")))
}

func TestCreate_InvalidTier(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.alice.ID, "chair", "wood", "gigantic")
	assert.ErrorIs(t, err, generator.ErrInvalidTier)
	assert.Zero(t, env.gen.calls)

	list, err := env.svc.List(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_EmptyProductName(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.alice.ID, "  ", "wood", "short")
	assert.ErrorIs(t, err, ErrEmptyProductName)
	assert.Zero(t, env.gen.calls)
}

func TestCreate_UpstreamFailurePersistsNothing(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	env.gen.err = errors.Join(generator.ErrUpstream, errors.New("503"))

	_, err := env.svc.Create(ctx, env.alice.ID, "chair", "wood", "complete")
	assert.ErrorIs(t, err, generator.ErrUpstream)

	list, err := env.svc.List(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Generations.WithLabelValues("complete", "error")))
}

func TestUpdate(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	d, err := env.svc.Create(ctx, env.alice.ID, "chair", "wood", "standard")
	require.NoError(t, err)

	t.Run("owner edits name and text", func(t *testing.T) {
		require.NoError(t, env.svc.Update(ctx, env.alice.ID, d.ID, "armchair", "Soft armchair."))

		got, err := env.svc.Get(ctx, env.alice.ID, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "armchair", got.ProductName)
		assert.Equal(t, "Soft armchair.", got.Text)
		assert.Equal(t, "wood", got.Comment)
		assert.Equal(t, env.alice.ID, got.OwnerID)
	})

	t.Run("blank product name", func(t *testing.T) {
		err := env.svc.Update(ctx, env.alice.ID, d.ID, " ", "text")
		assert.ErrorIs(t, err, ErrEmptyProductName)

		got, err := env.store.GetDescription(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "armchair", got.ProductName)
	})

	t.Run("missing ID", func(t *testing.T) {
		err := env.svc.Update(ctx, env.alice.ID, "nonexistent-id", "x", "y")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("other user cannot edit", func(t *testing.T) {
		err := env.svc.Update(ctx, env.bob.ID, d.ID, "stolen", "stolen")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		got, err := env.store.GetDescription(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "armchair", got.ProductName)
	})
}

func TestDelete(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	d, err := env.svc.Create(ctx, env.alice.ID, "chair", "wood", "short")
	require.NoError(t, err)

	err = env.svc.Delete(ctx, env.bob.ID, d.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound, "other user cannot delete")

	require.NoError(t, env.svc.Delete(ctx, env.alice.ID, d.ID))

	list, err := env.svc.List(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = env.svc.Delete(ctx, env.alice.ID, d.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
