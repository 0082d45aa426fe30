// Package cache keeps derived marketplace views in redis so repeated list
// requests skip the filter pass.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/example/condo-marketplace/domain/product"
	"github.com/go-monolith/mono/pkg/storage"
)

// ViewCache is the port the marketplace uses for cached product views.
// Keys are chosen by the caller and must already identify the view exactly.
type ViewCache interface {
	// Products returns the cached view under key and whether it was present.
	Products(ctx context.Context, key string) ([]product.Product, bool, error)

	// PutProducts stores a view for the configured TTL.
	PutProducts(ctx context.Context, key string, products []product.Product) error
}

// Counters are running totals since the plugin started.
type Counters struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Fills  uint64 `json:"fills"`
}

type viewCache struct {
	storage storage.Storage
	prefix  string
	ttl     time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
	fills  atomic.Uint64
}

var _ ViewCache = (*viewCache)(nil)

func newViewCache(s storage.Storage, prefix string, ttl time.Duration) *viewCache {
	return &viewCache{storage: s, prefix: prefix, ttl: ttl}
}

func (c *viewCache) Products(ctx context.Context, key string) ([]product.Product, bool, error) {
	fullKey := c.prefix + key

	data, err := c.storage.GetWithContext(ctx, fullKey)
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}
	if len(data) == 0 {
		c.misses.Add(1)
		return nil, false, nil
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	if products == nil {
		products = []product.Product{}
	}
	c.hits.Add(1)
	log.Printf("[cache] hit key=%s (%d products)", fullKey, len(products))
	return products, true, nil
}

func (c *viewCache) PutProducts(ctx context.Context, key string, products []product.Product) error {
	if products == nil {
		products = []product.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.storage.SetWithContext(ctx, c.prefix+key, data, c.ttl); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	c.fills.Add(1)
	return nil
}

func (c *viewCache) counters() Counters {
	return Counters{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Fills:  c.fills.Load(),
	}
}
