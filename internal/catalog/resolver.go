// Package catalog resolves product references against the external product
// service, with a short-lived snapshot cache in front of it.
package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/emberhaus/storefront/internal/domain/product"
)

// Source is the slice of the backend client the resolver needs.
type Source interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	ListProducts(ctx context.Context, category string) ([]product.Product, error)
}

// Resolver implements product.Resolver over the backend product service.
// Lookups for the same ID are deduplicated with singleflight and cached for
// a TTL, so a burst of views for one product costs a single backend call.
// Cached entries are snapshots: the cart copies what it needs at add time,
// so a stale cache entry can never rewrite existing cart lines.
type Resolver struct {
	source Source
	ttl    time.Duration

	sfg singleflight.Group

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	product product.Product
	fetched time.Time
}

var _ product.Resolver = (*Resolver)(nil)

// NewResolver creates a Resolver caching entries for ttl.
func NewResolver(source Source, ttl time.Duration) *Resolver {
	return &Resolver{
		source: source,
		ttl:    ttl,
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the catalog entry for the given identifier.
func (r *Resolver) Resolve(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	entry, ok := r.cache[id]
	r.mu.RUnlock()
	if ok && time.Since(entry.fetched) < r.ttl {
		p := entry.product
		return &p, nil
	}

	v, err, _ := r.sfg.Do(id, func() (any, error) {
		p, err := r.source.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[id] = cacheEntry{product: *p, fetched: time.Now()}
		r.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	p := *v.(*product.Product)
	return &p, nil
}

// List returns catalog entries, optionally filtered by category. Listings are
// not cached: the shop page is the source of freshness for prices and stock.
func (r *Resolver) List(ctx context.Context, category string) ([]product.Product, error) {
	return r.source.ListProducts(ctx, category)
}

// Invalidate drops the cached entry for id, if any. Used after admin catalog
// mutations so the console sees its own writes.
func (r *Resolver) Invalidate(id string) {
	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()
}
