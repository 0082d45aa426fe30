package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/condo-marketplace/domain/ident"
	"github.com/example/condo-marketplace/domain/product"
	"github.com/example/condo-marketplace/domain/resident"
	"github.com/example/condo-marketplace/modules/marketplace"
	"github.com/example/condo-marketplace/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo opens an in-memory sqlite database with the snapshot tables.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := openDB(":memory:", false)
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

type failingReplacer struct{}

func (failingReplacer) ReplaceProducts(context.Context, []product.Product) error {
	return errors.New("marketplace unavailable")
}

func (failingReplacer) ReplaceResidents(context.Context, []resident.Resident) error { return nil }

func TestRepository_SeedAndList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, DemoProducts(), DemoResidents()))

	products, residents, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), products)
	assert.Equal(t, int64(2), residents)

	listed, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 6)
	assert.Equal(t, "1", listed[0].ID, "newest product first")
	assert.Equal(t, "6", listed[5].ID)

	sofa := listed[0]
	require.NotNil(t, sofa.Price)
	assert.Equal(t, 800.0, *sofa.Price)
	assert.Equal(t, []string{"furniture", "living room", "leather"}, sofa.Tags)
	assert.Equal(t, "Maria Silva", sofa.Owner.Name)

	books := listed[1]
	assert.Nil(t, books.Price, "donations carry no price")
}

func TestRepository_RoundTripKeepsInactiveResidents(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	r := resident.Resident{
		ID:        uuid.New().String(),
		Name:      "Ana Costa",
		Apartment: "Apt 102",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		IsActive:  false,
	}
	require.NoError(t, repo.Seed(ctx, nil, []resident.Resident{r}))

	got, err := repo.ListResidents(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsActive)
	assert.True(t, r.CreatedAt.Equal(got[0].CreatedAt))
}

func TestLoader_SeedsEmptyDatabaseAndReplaces(t *testing.T) {
	repo := setupTestRepo(t)
	st := store.New()
	target := marketplace.NewService(st, ident.NewUUID())

	result, err := NewLoader(repo, true).Load(context.Background(), target)
	require.NoError(t, err)

	assert.True(t, result.Seeded)
	assert.Equal(t, 6, result.Products)
	assert.Equal(t, 2, result.Residents)

	state := st.ReadState()
	assert.Len(t, state.Products, 6)
	assert.Len(t, state.Residents, 2)
	assert.Equal(t, uint64(2), state.Version, "one replace per collection")
}

func TestLoader_DoesNotReseed(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Seed(ctx, DemoProducts()[:1], nil))

	result, err := NewLoader(repo, true).Load(ctx, marketplace.NewService(store.New(), ident.NewUUID()))
	require.NoError(t, err)
	assert.False(t, result.Seeded)
	assert.Equal(t, 1, result.Products)
}

func TestLoader_WithoutSeedLoadsNothing(t *testing.T) {
	repo := setupTestRepo(t)
	st := store.New(store.WithProducts(DemoProducts()))

	result, err := NewLoader(repo, false).Load(context.Background(), marketplace.NewService(st, ident.NewUUID()))
	require.NoError(t, err)
	assert.False(t, result.Seeded)
	assert.Empty(t, st.Products(), "an empty snapshot replaces the collection with nothing")
}

func TestLoader_PropagatesReplaceErrors(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := NewLoader(repo, true).Load(context.Background(), failingReplacer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace products")
}

func TestModule_StartWithInMemoryDatabase(t *testing.T) {
	st := store.New()
	m := NewModule(":memory:", true, false)
	m.marketplace = marketplace.NewService(st, ident.NewUUID())
	ctx := context.Background()

	require.NoError(t, m.Start(ctx))

	sqlDB, err := m.db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	state := st.ReadState()
	assert.Len(t, state.Products, 6)
	assert.Len(t, state.Residents, 2)

	health := m.Health(ctx)
	assert.True(t, health.Healthy, health.Message)
	assert.Equal(t, true, health.Details["seeded"])

	require.NoError(t, m.Stop(ctx))
}

func TestModule_StartRequiresMarketplace(t *testing.T) {
	m := NewModule(":memory:", true, false)
	assert.Error(t, m.Start(context.Background()))
	assert.NoError(t, m.Stop(context.Background()), "stopping an unopened module is a no-op")
}

func TestIsMemoryDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{":memory:", true},
		{"file::memory:?cache=shared", true},
		{"file:snap?mode=memory&cache=shared", true},
		{"condo.db", false},
		{"/var/lib/condo/snapshot.db", false},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, isMemoryDSN(tt.dsn))
		})
	}
}
