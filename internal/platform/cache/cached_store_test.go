package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

type memStore struct {
	photos []photo.Photo
	lists  int
	err    error
	// afterRead runs once the list has been read, before List returns
	afterRead func()
}

func (m *memStore) List(ctx context.Context) ([]photo.Photo, error) {
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := append([]photo.Photo{}, m.photos...)
	if hook := m.afterRead; hook != nil {
		m.afterRead = nil
		hook()
	}
	return out, nil
}

func (m *memStore) Add(ctx context.Context, p photo.Photo) error {
	if m.err != nil {
		return m.err
	}
	m.photos = append(m.photos, p)
	return nil
}

func (m *memStore) Remove(ctx context.Context, id string) error {
	for i := range m.photos {
		if m.photos[i].ID == id {
			m.photos = append(m.photos[:i], m.photos[i+1:]...)
			return nil
		}
	}
	return photo.ErrPhotoNotFound
}

type memCache struct {
	photos      []photo.Photo
	cached      bool
	failing     bool
	invalidated int
}

var errCacheDown = errors.New("cache down")

func (m *memCache) GetList(ctx context.Context) ([]photo.Photo, error) {
	if m.failing {
		return nil, errCacheDown
	}
	if !m.cached {
		return nil, photo.ErrCacheMiss
	}
	return m.photos, nil
}

func (m *memCache) SetList(ctx context.Context, photos []photo.Photo) error {
	if m.failing {
		return errCacheDown
	}
	m.photos, m.cached = photos, true
	return nil
}

func (m *memCache) Invalidate(ctx context.Context) error {
	m.invalidated++
	if m.failing {
		return errCacheDown
	}
	m.photos, m.cached = nil, false
	return nil
}

func TestCachedStore_ListFillsAndServesFromCache(t *testing.T) {
	ctx := context.Background()
	store := &memStore{photos: []photo.Photo{{ID: "1", Tags: []string{}}}}
	c := NewCachedStore(store, &memCache{}, observability.NewNopLogger())

	for i := 0; i < 3; i++ {
		photos, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, photos, 1)
	}
	assert.Equal(t, 1, store.lists, "only the first read reaches the store")
}

func TestCachedStore_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	mc := &memCache{}
	c := NewCachedStore(store, mc, observability.NewNopLogger())

	_, err := c.List(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Add(ctx, photo.Photo{ID: "1", Tags: []string{}}))
	assert.Equal(t, 1, mc.invalidated)

	photos, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	require.NoError(t, c.Remove(ctx, "1"))
	assert.Equal(t, 2, mc.invalidated)

	assert.ErrorIs(t, c.Remove(ctx, "1"), photo.ErrPhotoNotFound)
	assert.Equal(t, 2, mc.invalidated, "failed writes leave the cache alone")

	photos, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestCachedStore_CacheOutageFallsThrough(t *testing.T) {
	ctx := context.Background()
	store := &memStore{photos: []photo.Photo{{ID: "1", Tags: []string{}}}}
	c := NewCachedStore(store, &memCache{failing: true}, observability.NewNopLogger())

	photos, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, photos, 1)

	require.NoError(t, c.Add(ctx, photo.Photo{ID: "2", Tags: []string{}}))
	photos, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, photos, 2)
}

func TestCachedStore_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	c := NewCachedStore(&memStore{err: boom}, &memCache{}, observability.NewNopLogger())

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, c.Health(context.Background()))
}

func TestCachedStore_WriteDuringFillIsNotMasked(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	mc := &memCache{}
	cs := NewCachedStore(store, mc, observability.NewNopLogger())

	store.afterRead = func() {
		require.NoError(t, cs.Add(ctx, photo.Photo{ID: "1", URL: "http://localhost:4000/uploads/1_a.jpg"}))
	}

	first, err := cs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, first, "read began before the write")
	assert.False(t, mc.cached, "stale list must not be cached")

	second, err := cs.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "1", second[0].ID)
	assert.True(t, mc.cached)
}
