package cache

import (
	"context"
	"time"
)

// LoadFunc fetches the value for key from the backing store.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Resolver wraps a loader with TTL-based caching so repeated lookups do not
// hit the database. A non-positive ttl disables caching.
type Resolver[K comparable, V any] struct {
	load  LoadFunc[K, V]
	cache Cache[K, V]
	ttl   time.Duration
}

func NewResolver[K comparable, V any](load LoadFunc[K, V], ttl time.Duration) *Resolver[K, V] {
	var c Cache[K, V] = NoopCache[K, V]{}
	if ttl > 0 {
		c = NewTTLCache[K, V]()
	}
	return &Resolver[K, V]{load: load, cache: c, ttl: ttl}
}

// Resolve returns the cached value for key, loading it on a miss. Load
// errors are not cached.
func (r *Resolver[K, V]) Resolve(ctx context.Context, key K) (V, error) {
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}
	v, err := r.load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	r.cache.Set(key, v, r.ttl)
	return v, nil
}

// Invalidate drops key so the next Resolve reloads it.
func (r *Resolver[K, V]) Invalidate(key K) {
	r.cache.Delete(key)
}

func (r *Resolver[K, V]) InvalidateAll() {
	r.cache.Clear()
}
