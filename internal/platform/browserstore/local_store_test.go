package browserstore

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/observability"
)

func newTestStore(t *testing.T) (*LocalStore, *Storage) {
	t.Helper()
	storage := NewStorage()
	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	return NewLocalStore(storage, observability.NewNopLogger(), WithClock(clock)), storage
}

func TestLocalStore_EmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)

	photos, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)

	storage.SetItem(StorageKey, "{broken")
	photos, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.Empty(t, store.AdminList(ctx))
}

func TestLocalStore_CreatePrependsWithCustomID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	first, err := store.Create(ctx, photo.Photo{URL: "https://example.com/a.jpg", Title: "A", Width: 800, Height: 600})
	require.NoError(t, err)
	second, err := store.Create(ctx, photo.Photo{URL: "https://example.com/b.jpg", Title: "B", Width: 800, Height: 800})
	require.NoError(t, err)

	idPattern := regexp.MustCompile(`^custom-1700000000000-[0-9a-f-]{36}$`)
	assert.Regexp(t, idPattern, first.ID)
	assert.Regexp(t, idPattern, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	photos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, second.ID, photos[0].ID, "newest first")
	assert.Equal(t, first.ID, photos[1].ID)
	assert.Equal(t, []string{}, photos[0].Tags)
}

func TestLocalStore_AddKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(ctx, photo.Photo{ID: "given", Tags: []string{"x"}}))
	require.NoError(t, store.Add(ctx, photo.Photo{Title: "no id"}))

	photos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Contains(t, photos[0].ID, "custom-1700000000000-")
	assert.Equal(t, "given", photos[1].ID)
}

func TestLocalStore_Remove(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	kept, err := store.Create(ctx, photo.Photo{Title: "keep"})
	require.NoError(t, err)
	gone, err := store.Create(ctx, photo.Photo{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, gone.ID))
	assert.ErrorIs(t, store.Remove(ctx, gone.ID), photo.ErrPhotoNotFound)

	photos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, kept.ID, photos[0].ID)
}

func TestLocalStore_AdminListDefaults(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)

	storage.SetItem(StorageKey, `[
		{"url": "https://example.com/a.jpg", "title": "No id or size"},
		{"id": "keep", "url": "https://example.com/b.jpg", "title": "Sized", "width": 1024, "height": 0}
	]`)

	photos := store.AdminList(ctx)
	require.Len(t, photos, 2)

	assert.Equal(t, "custom-0", photos[0].ID)
	assert.Equal(t, 800, photos[0].Width)
	assert.Equal(t, 600, photos[0].Height)

	assert.Equal(t, "keep", photos[1].ID)
	assert.Equal(t, 1024, photos[1].Width)
	assert.Equal(t, 0, photos[1].Height, "an explicit zero is kept")
}

func TestLocalStore_Initialize(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	wrote, err := store.Initialize(ctx, false)
	require.NoError(t, err)
	assert.True(t, wrote)

	photos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, gallery.Synthesize(0, 20), photos)

	_, err = store.Create(ctx, photo.Photo{Title: "mine"})
	require.NoError(t, err)

	wrote, err = store.Initialize(ctx, false)
	require.NoError(t, err)
	assert.False(t, wrote, "existing data is left alone")
	photos, _ = store.List(ctx)
	assert.Len(t, photos, 21)

	wrote, err = store.Initialize(ctx, true)
	require.NoError(t, err)
	assert.True(t, wrote)
	photos, _ = store.List(ctx)
	assert.Len(t, photos, 20)
}

func TestStorage_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.state")

	store, storage := newTestStore(t)
	created, err := store.Create(ctx, photo.Photo{Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, storage.SaveFile(path))

	restored := NewStorage()
	require.NoError(t, restored.LoadFile(path))
	photos, err := NewLocalStore(restored, observability.NewNopLogger()).List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, created.ID, photos[0].ID)

	empty := NewStorage()
	require.NoError(t, empty.LoadFile(filepath.Join(t.TempDir(), "missing")))
	_, ok := empty.GetItem(StorageKey)
	assert.False(t, ok)
}
