package gallery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedLoader blocks every LoadPage until release is closed
type gatedLoader struct {
	inner   PageLoader
	release chan struct{}
	started chan int
	calls   atomic.Int32
}

func newGatedLoader(inner PageLoader) *gatedLoader {
	return &gatedLoader{
		inner:   inner,
		release: make(chan struct{}),
		started: make(chan int, 16),
	}
}

func (g *gatedLoader) LoadPage(ctx context.Context, cursor, pageSize int) (*Page, error) {
	g.calls.Add(1)
	g.started <- cursor
	<-g.release
	return g.inner.LoadPage(ctx, cursor, pageSize)
}

type errLoader struct{ err error }

func (e errLoader) LoadPage(ctx context.Context, cursor, pageSize int) (*Page, error) {
	return nil, e.err
}

func TestView_FetchInitialAndLoadMore(t *testing.T) {
	ctx := context.Background()
	v := NewView(NewPaginator(staticLister(Seed())), 8)

	require.NoError(t, v.FetchInitial(ctx))
	state := v.State()
	assert.Equal(t, 8, state.Loaded)
	assert.Equal(t, 2, state.Cursor)
	assert.True(t, state.HasMore)

	ran, err := v.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, Seed(), v.Loaded())
	assert.Equal(t, 3, v.State().Cursor)
}

func TestView_LoadMoreStopsAtCeiling(t *testing.T) {
	ctx := context.Background()
	v := NewView(NewPaginator(staticLister(Seed())), 8)
	require.NoError(t, v.FetchInitial(ctx))

	for v.HasMore() {
		_, err := v.LoadMore(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 104, v.State().Loaded)

	ran, err := v.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, ran, "load-more after the ceiling is a no-op")
	assert.Equal(t, 104, v.State().Loaded)
}

func TestView_LoadMoreIsSingleFlight(t *testing.T) {
	ctx := context.Background()
	loader := newGatedLoader(NewPaginator(staticLister(Seed())))
	v := NewView(loader, 8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = v.LoadMore(ctx)
	}()
	<-loader.started

	for i := 0; i < 10; i++ {
		ran, err := v.LoadMore(ctx)
		require.NoError(t, err)
		assert.False(t, ran)
	}
	assert.True(t, v.State().Loading)

	close(loader.release)
	<-done

	assert.Equal(t, int32(1), loader.calls.Load())
	assert.False(t, v.State().Loading)
	assert.Equal(t, 8, v.State().Loaded)
}

func TestView_RefetchDiscardsStaleLoad(t *testing.T) {
	ctx := context.Background()
	loader := newGatedLoader(NewPaginator(staticLister(Seed())))
	v := NewView(loader, 8)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = v.LoadMore(ctx)
	}()
	<-loader.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.Refetch(ctx)
	}()
	<-loader.started

	close(loader.release)
	wg.Wait()

	state := v.State()
	assert.Equal(t, 8, state.Loaded, "only the refetched first page survives")
	assert.Equal(t, 2, state.Cursor)
	assert.False(t, state.Loading)
}

func TestView_LoadErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	v := NewView(errLoader{err: boom}, 8)

	ran, err := v.LoadMore(ctx)
	assert.True(t, ran)
	assert.ErrorIs(t, err, boom)

	state := v.State()
	assert.Zero(t, state.Loaded)
	assert.Equal(t, 1, state.Cursor)
	assert.False(t, state.Loading)
	assert.True(t, state.HasMore)
}

func TestView_FiltersAndTags(t *testing.T) {
	ctx := context.Background()
	v := NewView(NewPaginator(staticLister(Seed())), 16)
	require.NoError(t, v.FetchInitial(ctx))

	v.SetTag("sunset")
	visible := v.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "9", visible[0].ID)
	assert.Equal(t, "15", visible[1].ID)

	v.SetSearchQuery("harvest")
	visible = v.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "15", visible[0].ID)

	v.SetTag("")
	v.SetSearchQuery("")
	assert.Len(t, v.Visible(), 16)

	tags := v.AvailableTags()
	assert.IsIncreasing(t, tags)
	assert.Contains(t, tags, "sunset")
	assert.Contains(t, tags, "night")
}

func TestView_Remove(t *testing.T) {
	ctx := context.Background()
	v := NewView(NewPaginator(staticLister(Seed())), 8)
	require.NoError(t, v.FetchInitial(ctx))

	assert.True(t, v.Remove("3"))
	assert.False(t, v.Remove("3"))
	assert.Len(t, v.Loaded(), 7)
	for _, p := range v.Loaded() {
		assert.NotEqual(t, "3", p.ID)
	}
}

func TestNewView_DefaultsPageSize(t *testing.T) {
	v := NewView(NewPaginator(staticLister(nil)), 0)
	require.NoError(t, v.FetchInitial(context.Background()))
	assert.Equal(t, DefaultPageSize, v.State().Loaded)
}
