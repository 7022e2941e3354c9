package browserstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/observability"
)

// StorageKey is where the record array lives
const StorageKey = "custom_gallery_images_v1"

const (
	sampleCount        = 20
	defaultAdminWidth  = 800
	defaultAdminHeight = 600
	customIDPrefix     = "custom-"
)

// storedEntry tolerates partially written records; pointer fields tell a
// missing value apart from a zero one
type storedEntry struct {
	ID           *string  `json:"id,omitempty"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Photographer string   `json:"photographer,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// LocalStore keeps gallery records as a JSON array under StorageKey. New
// records are prepended.
type LocalStore struct {
	storage *Storage
	logger  *observability.Logger
	now     func() time.Time
}

// Option configures a LocalStore
type Option func(*LocalStore)

// WithClock overrides the time source used for generated ids
func WithClock(now func() time.Time) Option {
	return func(s *LocalStore) {
		s.now = now
	}
}

// NewLocalStore creates a store over storage
func NewLocalStore(storage *Storage, logger *observability.Logger, opts ...Option) *LocalStore {
	s := &LocalStore{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns custom-{millis}-{uuid}
func (s *LocalStore) NewID() string {
	return customIDPrefix + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString()
}

// List returns stored records as written
func (s *LocalStore) List(ctx context.Context) ([]photo.Photo, error) {
	entries := s.read(ctx)
	photos := make([]photo.Photo, 0, len(entries))
	for _, e := range entries {
		photos = append(photos, e.toPhoto())
	}
	return photos, nil
}

// Add prepends p. An empty id is replaced with a generated one.
func (s *LocalStore) Add(ctx context.Context, p photo.Photo) error {
	if p.ID == "" {
		p.ID = s.NewID()
	}
	return s.prepend(ctx, p)
}

// Create prepends p under a freshly generated id and returns the stored record
func (s *LocalStore) Create(ctx context.Context, p photo.Photo) (photo.Photo, error) {
	p.ID = s.NewID()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := s.prepend(ctx, p); err != nil {
		return photo.Photo{}, err
	}
	return p, nil
}

func (s *LocalStore) prepend(ctx context.Context, p photo.Photo) error {
	entries := s.read(ctx)
	updated := make([]storedEntry, 0, len(entries)+1)
	updated = append(updated, fromPhoto(p))
	updated = append(updated, entries...)
	return s.write(updated)
}

// Remove drops every record with id
func (s *LocalStore) Remove(ctx context.Context, id string) error {
	entries := s.read(ctx)
	kept := make([]storedEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != nil && *e.ID == id {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("%w: %s", photo.ErrPhotoNotFound, id)
	}
	return s.write(kept)
}

// AdminList returns records for the admin table with missing ids filled as
// custom-{index} and missing dimensions as 800x600
func (s *LocalStore) AdminList(ctx context.Context) []photo.Photo {
	entries := s.read(ctx)
	photos := make([]photo.Photo, 0, len(entries))
	for idx, e := range entries {
		p := e.toPhoto()
		if e.ID == nil {
			p.ID = customIDPrefix + strconv.Itoa(idx)
		}
		if e.Width == nil {
			p.Width = defaultAdminWidth
		}
		if e.Height == nil {
			p.Height = defaultAdminHeight
		}
		photos = append(photos, p)
	}
	return photos
}

// Initialize seeds 20 synthetic records when nothing is stored yet, or
// unconditionally when force is set. It reports whether it wrote.
func (s *LocalStore) Initialize(ctx context.Context, force bool) (bool, error) {
	if _, ok := s.storage.GetItem(StorageKey); ok && !force {
		return false, nil
	}

	samples := gallery.Synthesize(0, sampleCount)
	entries := make([]storedEntry, 0, len(samples))
	for _, p := range samples {
		entries = append(entries, fromPhoto(p))
	}
	if err := s.write(entries); err != nil {
		return false, err
	}
	s.logger.Info(ctx).Int("count", len(entries)).Bool("force", force).Msg("Seeded local gallery store")
	return true, nil
}

func (s *LocalStore) read(ctx context.Context) []storedEntry {
	raw, ok := s.storage.GetItem(StorageKey)
	if !ok {
		return []storedEntry{}
	}

	var entries []storedEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn(ctx).Err(err).Str("key", StorageKey).Msg("Stored gallery is corrupt, treating as empty")
		return []storedEntry{}
	}
	return entries
}

func (s *LocalStore) write(entries []storedEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", photo.ErrPersistence, err)
	}
	s.storage.SetItem(StorageKey, string(data))
	return nil
}

func fromPhoto(p photo.Photo) storedEntry {
	id := p.ID
	width, height := p.Width, p.Height
	return storedEntry{
		ID:           &id,
		URL:          p.URL,
		Title:        p.Title,
		Description:  p.Description,
		Tags:         p.Tags,
		Width:        &width,
		Height:       &height,
		Photographer: p.Photographer,
		Location:     p.Location,
	}
}

func (e storedEntry) toPhoto() photo.Photo {
	p := photo.Photo{
		URL:          e.URL,
		Title:        e.Title,
		Description:  e.Description,
		Tags:         e.Tags,
		Photographer: e.Photographer,
		Location:     e.Location,
	}
	if e.ID != nil {
		p.ID = *e.ID
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if e.Width != nil {
		p.Width = *e.Width
	}
	if e.Height != nil {
		p.Height = *e.Height
	}
	return p
}
