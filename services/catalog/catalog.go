package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SanketJawali/tinker-store-api/cache"
	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

var ErrInvalidProduct = errors.New("invalid product data")

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ProductStore is the persistence surface for products.
type ProductStore interface {
	Search(ctx context.Context, q string, offset, limit int) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	ByID(ctx context.Context, id uint) (*models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
}

// ListingCache is the cache-aside surface the catalog composes with. All
// methods are soft-failing; cache.Store satisfies this.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefix string) int
}

// UserResolver links a verified identity claim to a local user ID.
type UserResolver interface {
	Resolve(ctx context.Context, claim identity.Claim) (uint, error)
}

// NewProduct is the creation input after request binding.
type NewProduct struct {
	Name        string
	Price       int
	Description string
	Category    string
	Stock       int
	ImageURL    string
}

// Catalog owns the product listing read path (cache-aside over the listing
// cache) and the product creation write path (insert, then prefix
// invalidation).
type Catalog struct {
	products ProductStore
	listings ListingCache
	resolver UserResolver
	ttl      time.Duration
	log      *logrus.Logger
}

func New(products ProductStore, listings ListingCache, resolver UserResolver, ttl time.Duration, log *logrus.Logger) *Catalog {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Catalog{products: products, listings: listings, resolver: resolver, ttl: ttl, log: log}
}

// List returns one page of products, checking the cache first and populating
// it after a miss. When q is set, the database query matches it
// case-insensitively against name and description. Page and limit are
// canonicalized before the cache key is built, so equivalent requests share
// an entry.
func (s *Catalog) List(ctx context.Context, q string, page, limit int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	key := cache.ListingKey(q, page, limit)
	if payload, ok := s.listings.Get(ctx, key); ok {
		var products []models.Product
		if err := json.Unmarshal(payload, &products); err == nil {
			return products, nil
		}
		// Corrupt entry: fall through to the database and overwrite it.
		s.log.WithField("key", key).Warn("discarding undecodable cache entry")
	}

	s.log.WithFields(logrus.Fields{"page": page, "limit": limit, "q": q}).Info("cache miss, fetching products from db")

	offset := (page - 1) * limit
	products, err := s.products.Search(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	if payload, err := json.Marshal(products); err == nil {
		s.listings.Set(ctx, key, payload, s.ttl)
	}
	return products, nil
}

// Create resolves the caller's identity (creating the local user on first
// write), inserts the product owned by that user, then drops every listing
// cache entry. Invalidation is best-effort: the product is already
// committed, so a cache failure must not fail the request.
func (s *Catalog) Create(ctx context.Context, claim identity.Claim, input NewProduct) (*models.Product, error) {
	if input.Name == "" || input.Price <= 0 || input.Stock < 0 {
		return nil, ErrInvalidProduct
	}

	ownerID, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		OwnerID:     ownerID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.listings.InvalidatePrefix(ctx, cache.ListingPrefix)
	return product, nil
}

// Get returns a single product. Plain read, no cache.
func (s *Catalog) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.ByID(ctx, id)
}

// All returns every product, used by the admin export.
func (s *Catalog) All(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}
