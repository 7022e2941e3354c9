// Package gallery implements incremental gallery loading: the paginator that
// reveals the catalog page by page, the per-viewer view state, tag and search
// filtering, and the scroll trigger that drives load-more.
package gallery

import (
	"context"
	"fmt"
	"math"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

const (
	// DefaultPageSize is the number of records revealed per load
	DefaultPageSize = 8
	// DefaultCeiling is the loaded-record count at which hasMore turns off
	DefaultCeiling = 100
)

// Lister supplies the real records the paginator slices from
type Lister interface {
	List(ctx context.Context) ([]photo.Photo, error)
}

// Page is one slice of the gallery
type Page struct {
	Records    []photo.Photo `json:"images"`
	Cursor     int           `json:"page"`
	NextCursor int           `json:"next_page"`
	HasMore    bool          `json:"has_more"`
	Total      int           `json:"total"`
	Synthetic  int           `json:"synthetic"`
}

// Paginator computes gallery pages. It holds no per-viewer state and is safe
// for concurrent use.
type Paginator struct {
	source     Lister
	ceiling    int
	synthesize bool
}

// Option configures a Paginator
type Option func(*Paginator)

// WithCeiling sets the loaded-record count at which hasMore turns off.
// Non-positive values are ignored.
func WithCeiling(n int) Option {
	return func(p *Paginator) {
		if n > 0 {
			p.ceiling = n
		}
	}
}

// WithoutSynthesis restricts pages to the real store. hasMore then reports
// whether records remain past the page.
func WithoutSynthesis() Option {
	return func(p *Paginator) {
		p.synthesize = false
	}
}

// NewPaginator creates a paginator over source
func NewPaginator(source Lister, opts ...Option) *Paginator {
	p := &Paginator{
		source:     source,
		ceiling:    DefaultCeiling,
		synthesize: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadPage returns page cursor (1-based) of pageSize records
func (p *Paginator) LoadPage(ctx context.Context, cursor, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", photo.ErrInvalidPagination, pageSize)
	}
	if cursor < 1 {
		return nil, fmt.Errorf("%w: cursor must be at least 1, got %d", photo.ErrInvalidPagination, cursor)
	}
	if cursor > math.MaxInt/pageSize {
		return nil, fmt.Errorf("%w: cursor %d overflows with page size %d", photo.ErrInvalidPagination, cursor, pageSize)
	}

	records, err := p.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	total := len(records)
	start := (cursor - 1) * pageSize

	page := &Page{
		Cursor:     cursor,
		NextCursor: cursor + 1,
		Total:      total,
		Records:    []photo.Photo{},
	}

	if start < total {
		end := min(start+pageSize, total)
		page.Records = append(page.Records, records[start:end]...)
	}

	if !p.synthesize {
		page.HasMore = start+pageSize < total
		return page, nil
	}

	if shortfall := pageSize - len(page.Records); shortfall > 0 {
		if total > math.MaxInt-start {
			return nil, fmt.Errorf("%w: synthetic offset overflows", photo.ErrInvalidPagination)
		}
		page.Records = append(page.Records, Synthesize(total+start, shortfall)...)
		page.Synthetic = shortfall
	}

	page.HasMore = cursor*pageSize < p.ceiling
	return page, nil
}

// Catalog is the real record list: store records followed by the static seed.
// A failing store read degrades to the seed alone.
type Catalog struct {
	store  photo.Store
	seed   []photo.Photo
	logger *observability.Logger
}

// NewCatalog creates a catalog over store with the given seed records
func NewCatalog(store photo.Store, seed []photo.Photo, logger *observability.Logger) *Catalog {
	return &Catalog{
		store:  store,
		seed:   seed,
		logger: logger,
	}
}

// List returns store records then seed records
func (c *Catalog) List(ctx context.Context) ([]photo.Photo, error) {
	var stored []photo.Photo
	if c.store != nil {
		var err error
		stored, err = c.store.List(ctx)
		if err != nil {
			c.logger.Warn(ctx).Err(err).Msg("Store read failed, serving seed catalog only")
			stored = nil
		}
	}

	out := make([]photo.Photo, 0, len(stored)+len(c.seed))
	out = append(out, stored...)
	out = append(out, clonePhotos(c.seed)...)
	return out, nil
}
