// Package cache keeps the persisted photo list in Redis/Valkey so list reads
// skip the backing store until the next write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
)

// ListKey holds the JSON-encoded record list
const ListKey = "photos:list"

// ErrCacheDisabled is returned when a client is requested with caching off
var ErrCacheDisabled = errors.New("cache is disabled")

const pingTimeout = 5 * time.Second

// RedisClient holds the list cache connection. Valkey speaks the same
// protocol and works unchanged.
type RedisClient struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func clientOptions(cfg config.CacheConfig) *redis.Options {
	return &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.Database,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
	}
}

// NewRedisClient connects and pings the configured server
func NewRedisClient(cfg config.CacheConfig) (*RedisClient, error) {
	if !cfg.Enabled {
		return nil, ErrCacheDisabled
	}

	rdb := redis.NewClient(clientOptions(cfg))
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close() //nolint:errcheck // ping error wins
		return nil, fmt.Errorf("cache: connect %s: %w", cfg.Address, err)
	}

	return &RedisClient{client: rdb, defaultTTL: cfg.DefaultTTL}, nil
}

// GetList returns the cached list or photo.ErrCacheMiss
func (r *RedisClient) GetList(ctx context.Context) ([]photo.Photo, error) {
	raw, err := r.client.Get(ctx, ListKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, photo.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("cache: get %s: %w", ListKey, err)
	}

	photos := []photo.Photo{}
	if err := json.Unmarshal(raw, &photos); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", ListKey, err)
	}
	if photos == nil {
		// a cached JSON null
		photos = []photo.Photo{}
	}
	return photos, nil
}

// SetList replaces the cached list; it expires after the configured TTL
func (r *RedisClient) SetList(ctx context.Context, photos []photo.Photo) error {
	if photos == nil {
		photos = []photo.Photo{}
	}
	raw, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", ListKey, err)
	}
	return wrap("set", r.client.Set(ctx, ListKey, raw, r.defaultTTL).Err())
}

// Invalidate drops the cached list
func (r *RedisClient) Invalidate(ctx context.Context) error {
	return wrap("del", r.client.Del(ctx, ListKey).Err())
}

// Health pings the server
func (r *RedisClient) Health(ctx context.Context) error {
	return wrap("ping", r.client.Ping(ctx).Err())
}

// FlushCache empties the selected database. Integration tests use it to reset state.
func (r *RedisClient) FlushCache(ctx context.Context) error {
	return wrap("flushdb", r.client.FlushDB(ctx).Err())
}

// Close releases the connection pool
func (r *RedisClient) Close() error {
	return r.client.Close()
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("cache: %s: %w", op, err)
}
