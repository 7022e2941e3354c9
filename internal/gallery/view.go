package gallery

import (
	"context"
	"sync"

	"photo-gallery/internal/domain/photo"
)

// PageLoader loads one gallery page
type PageLoader interface {
	LoadPage(ctx context.Context, cursor, pageSize int) (*Page, error)
}

// ViewState is a snapshot of a View
type ViewState struct {
	Loaded  int    `json:"loaded"`
	Cursor  int    `json:"cursor"`
	HasMore bool   `json:"has_more"`
	Loading bool   `json:"loading"`
	Tag     string `json:"tag,omitempty"`
	Query   string `json:"query,omitempty"`
}

// View is the gallery state of a single viewer. Loaded records only grow
// until Refetch. At most one load is in flight at a time.
type View struct {
	mu       sync.Mutex
	loader   PageLoader
	pageSize int

	loaded  []photo.Photo
	cursor  int
	hasMore bool
	loading bool
	tag     string
	query   string

	// generation changes on every reset so stale loads can be dropped
	generation uint64
}

// NewView creates an empty view reading pages of pageSize from loader
func NewView(loader PageLoader, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		loader:   loader,
		pageSize: pageSize,
		loaded:   []photo.Photo{},
		cursor:   1,
		hasMore:  true,
	}
}

// FetchInitial replaces the loaded records with page 1 and moves the cursor to 2
func (v *View) FetchInitial(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.loading = true
	v.mu.Unlock()

	page, err := v.loader.LoadPage(ctx, 1, v.pageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return nil
	}
	v.loading = false
	if err != nil {
		return err
	}

	v.loaded = append([]photo.Photo{}, page.Records...)
	v.cursor = 2
	v.hasMore = page.HasMore
	return nil
}

// Refetch resets the view to its first page
func (v *View) Refetch(ctx context.Context) error {
	return v.FetchInitial(ctx)
}

// LoadMore appends the page at the cursor. It is a no-op, returning false,
// while another load is in flight or when no more records are expected.
func (v *View) LoadMore(ctx context.Context) (bool, error) {
	v.mu.Lock()
	if v.loading || !v.hasMore {
		v.mu.Unlock()
		return false, nil
	}
	v.loading = true
	cursor := v.cursor
	gen := v.generation
	v.mu.Unlock()

	page, err := v.loader.LoadPage(ctx, cursor, v.pageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return true, nil
	}
	v.loading = false
	if err != nil {
		return true, err
	}

	v.loaded = append(v.loaded, page.Records...)
	v.cursor = cursor + 1
	v.hasMore = page.HasMore
	return true, nil
}

// SetTag sets the active tag filter; empty clears it
func (v *View) SetTag(tag string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tag = tag
}

// SetSearchQuery sets the active search query; empty clears it
func (v *View) SetSearchQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
}

// Remove drops a record from the loaded set
func (v *View) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.loaded {
		if v.loaded[i].ID == id {
			v.loaded = append(v.loaded[:i:i], v.loaded[i+1:]...)
			return true
		}
	}
	return false
}

// Visible returns loaded records passing the active filters
func (v *View) Visible() []photo.Photo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.loaded, Criteria{Tag: v.tag, Query: v.query})
}

// Loaded returns a copy of every loaded record
func (v *View) Loaded() []photo.Photo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]photo.Photo{}, v.loaded...)
}

// AvailableTags returns the sorted set of tags across loaded records
func (v *View) AvailableTags() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return photo.AvailableTags(v.loaded)
}

// HasMore reports whether further pages are expected
func (v *View) HasMore() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hasMore
}

// State returns a snapshot of the view
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ViewState{
		Loaded:  len(v.loaded),
		Cursor:  v.cursor,
		HasMore: v.hasMore,
		Loading: v.loading,
		Tag:     v.tag,
		Query:   v.query,
	}
}
