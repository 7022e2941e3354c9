package implementations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/observability"
)

// PhotoServiceImpl implements photo.PhotoService over a record store and a
// blob store
type PhotoServiceImpl struct {
	store   photo.Store
	blobs   photo.BlobStore
	catalog gallery.Lister
	baseURL string
	logger  *observability.Logger
	now     func() time.Time
}

// NewPhotoService creates the service. catalog resolves ids for Get and may
// include records beyond store, such as the seed list.
func NewPhotoService(
	store photo.Store,
	blobs photo.BlobStore,
	catalog gallery.Lister,
	baseURL string,
	logger *observability.Logger,
) *PhotoServiceImpl {
	return &PhotoServiceImpl{
		store:   store,
		blobs:   blobs,
		catalog: catalog,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns the stored records. Read failures degrade to an empty list.
func (s *PhotoServiceImpl) List(ctx context.Context) []photo.Photo {
	photos, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn(ctx).Err(err).Msg("Failed to read photo store, serving empty list")
		return []photo.Photo{}
	}
	if photos == nil {
		return []photo.Photo{}
	}
	return photos
}

// Get resolves id against the catalog, then against the synthetic sequence
// for numeric ids
func (s *PhotoServiceImpl) Get(ctx context.Context, id string) (*photo.Photo, error) {
	records, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Warn(ctx).Err(err).Msg("Failed to read catalog for lookup")
	}
	for i := range records {
		if records[i].ID == id {
			p := records[i]
			return &p, nil
		}
	}

	if n, err := strconv.Atoi(id); err == nil && n >= 0 && strconv.Itoa(n) == id {
		p := gallery.Synthesize(n, 1)[0]
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %s", photo.ErrPhotoNotFound, id)
}

// Upload stores the file as {millis}_{filename} and appends a record pointing
// at it. If the record cannot be saved the stored file is removed again.
func (s *PhotoServiceImpl) Upload(
	ctx context.Context,
	req *photo.CreatePhotoRequest,
	filename, contentType string,
	r io.Reader,
	size int64,
) (*photo.Photo, error) {
	if req == nil {
		req = &photo.CreatePhotoRequest{}
	}
	if r == nil {
		return nil, photo.ErrMissingFile
	}

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	millis := s.now().UnixMilli()
	name := photo.StoredName(millis, filename)

	if err := s.blobs.Save(ctx, name, contentType, r, size); err != nil {
		return nil, fmt.Errorf("%w: failed to store file: %v", photo.ErrPersistence, err)
	}

	p := req.NewPhoto(strconv.FormatInt(millis, 10), s.baseURL+"/uploads/"+url.PathEscape(name))
	if err := s.store.Add(ctx, p); err != nil {
		if derr := s.blobs.Delete(ctx, name); derr != nil && !errors.Is(derr, photo.ErrBlobNotFound) {
			s.logger.Error(ctx).Err(derr).Str("name", name).Msg("Failed to remove orphaned upload")
		}
		if errors.Is(err, photo.ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", photo.ErrPersistence, err)
	}

	s.logger.Info(ctx).
		Str("photo_id", p.ID).
		Str("name", name).
		Int64("size", size).
		Msg("Photo uploaded")
	return &p, nil
}
