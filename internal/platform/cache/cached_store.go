package cache

import (
	"context"
	"errors"
	"sync"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

// CachedStore serves List from a ListCache and drops the cached copy on
// every write. Cache failures only cost a trip to the backing store.
//
// Every write bumps a generation under mu. A fill only stores its list when
// no write happened since its store read began, so a list read before a
// write is never cached after that write's invalidation.
type CachedStore struct {
	store  photo.Store
	cache  photo.ListCache
	logger *observability.Logger

	mu         sync.Mutex
	generation uint64
}

// NewCachedStore decorates store with cache
func NewCachedStore(store photo.Store, cache photo.ListCache, logger *observability.Logger) *CachedStore {
	return &CachedStore{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// List returns the cached list, filling it from the store on a miss
func (c *CachedStore) List(ctx context.Context) ([]photo.Photo, error) {
	photos, err := c.cache.GetList(ctx)
	if err == nil {
		return photos, nil
	}
	if !errors.Is(err, photo.ErrCacheMiss) {
		c.logger.Warn(ctx).Err(err).Msg("Photo list cache read failed")
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	photos, err = c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, gen, photos)
	return photos, nil
}

func (c *CachedStore) fill(ctx context.Context, gen uint64, photos []photo.Photo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		c.logger.Debug(ctx).Msg("Skipping photo list cache fill after a concurrent write")
		return
	}
	if err := c.cache.SetList(ctx, photos); err != nil {
		c.logger.Warn(ctx).Err(err).Msg("Photo list cache fill failed")
	}
}

// Add persists p then invalidates the cached list
func (c *CachedStore) Add(ctx context.Context, p photo.Photo) error {
	if err := c.store.Add(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Remove deletes id then invalidates the cached list
func (c *CachedStore) Remove(ctx context.Context, id string) error {
	if err := c.store.Remove(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Health reports the backing store's health, when it exposes one
func (c *CachedStore) Health(ctx context.Context) error {
	if hc, ok := c.store.(photo.HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.Warn(ctx).Err(err).Msg("Photo list cache invalidation failed")
	}
}
