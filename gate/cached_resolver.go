package gate

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// CachedResolver wraps an IdentityResolver with a TTL cache so that
// authorizing a request does not hit the database every time.
// Unknown identities are never cached.
type CachedResolver struct {
	inner IdentityResolver
	cache *ristretto.Cache[string, Role]
	ttl   time.Duration
}

// NewCachedResolver wraps a resolver with caching.
// ttl is how long a resolved role is kept before re-fetching.
func NewCachedResolver(inner IdentityResolver, ttl time.Duration) (*CachedResolver, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, Role]{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedResolver{inner: inner, cache: c, ttl: ttl}, nil
}

// Resolve returns the role for id, using the cache if available.
func (r *CachedResolver) Resolve(ctx context.Context, id string) (Role, error) {
	if role, ok := r.cache.Get(id); ok {
		return role, nil
	}
	role, err := r.inner.Resolve(ctx, id)
	if err != nil {
		return "", err
	}
	if role != "" {
		r.cache.SetWithTTL(id, role, 1, r.ttl)
		r.cache.Wait()
	}
	return role, nil
}

// Close stops the cache's background goroutines.
func (r *CachedResolver) Close() {
	r.cache.Close()
}
