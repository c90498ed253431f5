package catalog

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanketJawali/tinker-store-api/cache"
	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

type fakeProductStore struct {
	mu       sync.Mutex
	nextID   uint
	products []models.Product
	searches int
}

func (f *fakeProductStore) Search(_ context.Context, q string, offset, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if offset >= len(f.products) {
		return []models.Product{}, nil
	}
	end := offset + limit
	if end > len(f.products) {
		end = len(f.products)
	}
	return append([]models.Product{}, f.products[offset:end]...), nil
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductStore) ByID(_ context.Context, id uint) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProductStore) All(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Product{}, f.products...), nil
}

// fakeCache is an always-available in-memory ListingCache.
type fakeCache struct {
	mu           sync.Mutex
	data         map[string][]byte
	sets         int
	invalidation int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	return b, ok
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.data[key] = payload
}

func (f *fakeCache) InvalidatePrefix(_ context.Context, prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidation++
	removed := 0
	for k := range f.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(f.data, k)
			removed++
		}
	}
	return removed
}

// deadCache drops writes and never hits, like an unreachable Redis.
type deadCache struct{}

func (deadCache) Get(context.Context, string) ([]byte, bool)       { return nil, false }
func (deadCache) Set(context.Context, string, []byte, time.Duration) {}
func (deadCache) InvalidatePrefix(context.Context, string) int     { return 0 }

type staticResolver struct{ id uint }

func (r staticResolver) Resolve(_ context.Context, claim identity.Claim) (uint, error) {
	if claim.Email == "" {
		return 0, identity.ErrMissingEmail
	}
	return r.id, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedProducts(store *fakeProductStore, n int) {
	for i := 0; i < n; i++ {
		store.Create(context.Background(), &models.Product{Name: "widget", Price: 100 + i})
	}
}

func TestListPopulatesCacheOnMiss(t *testing.T) {
	store := &fakeProductStore{}
	seedProducts(store, 3)
	listings := newFakeCache()
	svc := New(store, listings, staticResolver{id: 1}, time.Hour, testLogger())

	first, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, store.searches)

	second, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, store.searches, "second read must be served from cache")

	// Hit and miss return equivalent payloads for the same persisted state.
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, a, b)
}

func TestListCanonicalizesPagination(t *testing.T) {
	store := &fakeProductStore{}
	seedProducts(store, 1)
	listings := newFakeCache()
	svc := New(store, listings, staticResolver{id: 1}, time.Hour, testLogger())

	_, err := svc.List(context.Background(), "", 0, 0)
	require.NoError(t, err)

	_, ok := listings.Get(context.Background(), cache.ListingKey("", 1, 20))
	assert.True(t, ok, "page 0 / limit 0 must map onto page 1 / default limit")

	_, err = svc.List(context.Background(), "", 1, 500)
	require.NoError(t, err)
	_, ok = listings.Get(context.Background(), cache.ListingKey("", 1, 100))
	assert.True(t, ok, "limit above the maximum must clamp to 100")
}

func TestListWorksWithDeadCache(t *testing.T) {
	store := &fakeProductStore{}
	seedProducts(store, 2)
	svc := New(store, deadCache{}, staticResolver{id: 1}, time.Hour, testLogger())

	for i := 0; i < 2; i++ {
		products, err := svc.List(context.Background(), "", 1, 20)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	}
	assert.Equal(t, 2, store.searches, "every read goes to the db when the cache is down")
}

func TestListDiscardsCorruptCacheEntry(t *testing.T) {
	store := &fakeProductStore{}
	seedProducts(store, 2)
	listings := newFakeCache()
	listings.Set(context.Background(), cache.ListingKey("", 1, 20), []byte("{not json"), time.Hour)
	svc := New(store, listings, staticResolver{id: 1}, time.Hour, testLogger())

	products, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, store.searches)
}

func TestCreateInvalidatesListingPrefix(t *testing.T) {
	store := &fakeProductStore{}
	seedProducts(store, 1)
	listings := newFakeCache()
	svc := New(store, listings, staticResolver{id: 7}, time.Hour, testLogger())

	// Warm two listing entries plus an unrelated key.
	_, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "widget", 1, 20)
	require.NoError(t, err)
	listings.Set(context.Background(), "session:abc", []byte("x"), time.Hour)

	created, err := svc.Create(context.Background(), identity.Claim{Email: "o@example.com"}, NewProduct{
		Name: "gizmo", Price: 500, Stock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), created.OwnerID)

	_, ok := listings.Get(context.Background(), cache.ListingKey("", 1, 20))
	assert.False(t, ok)
	_, ok = listings.Get(context.Background(), cache.ListingKey("widget", 1, 20))
	assert.False(t, ok)
	_, ok = listings.Get(context.Background(), "session:abc")
	assert.True(t, ok, "invalidation must stay inside the listing prefix")

	// The next read reflects the new product immediately.
	products, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreateSucceedsWhenCacheIsDown(t *testing.T) {
	store := &fakeProductStore{}
	svc := New(store, deadCache{}, staticResolver{id: 7}, time.Hour, testLogger())

	created, err := svc.Create(context.Background(), identity.Claim{Email: "o@example.com"}, NewProduct{
		Name: "gizmo", Price: 500,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := New(&fakeProductStore{}, newFakeCache(), staticResolver{id: 1}, time.Hour, testLogger())

	_, err := svc.Create(context.Background(), identity.Claim{Email: "o@example.com"}, NewProduct{Name: "", Price: 100})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.Create(context.Background(), identity.Claim{Email: "o@example.com"}, NewProduct{Name: "x", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCreateRequiresEmailClaim(t *testing.T) {
	store := &fakeProductStore{}
	svc := New(store, newFakeCache(), staticResolver{id: 1}, time.Hour, testLogger())

	_, err := svc.Create(context.Background(), identity.Claim{}, NewProduct{Name: "x", Price: 100})
	assert.ErrorIs(t, err, identity.ErrMissingEmail)
	assert.Empty(t, store.products)
}
