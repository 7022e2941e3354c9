package photo

import (
	"context"
	"io"
)

// Store is the persisted backing list of gallery records
type Store interface {
	// List returns every record in store order
	List(ctx context.Context) ([]Photo, error)
	// Add persists a record. Position is backend-defined: the JSON file
	// appends, the browser-style local store prepends.
	Add(ctx context.Context, p Photo) error
	// Remove deletes a record by id. Missing ids return ErrPhotoNotFound.
	Remove(ctx context.Context, id string) error
}

// BlobStore holds uploaded image bytes
type BlobStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// ListCache caches the full record list
type ListCache interface {
	GetList(ctx context.Context) ([]Photo, error)
	SetList(ctx context.Context, photos []Photo) error
	Invalidate(ctx context.Context) error
}

// PhotoService handles listing and uploads
type PhotoService interface {
	List(ctx context.Context) []Photo
	Get(ctx context.Context, id string) (*Photo, error)
	Upload(ctx context.Context, req *CreatePhotoRequest, filename, contentType string, r io.Reader, size int64) (*Photo, error)
}

// AdminGate checks the shared admin secret
type AdminGate interface {
	Login(ctx context.Context, password string) error
}

// HealthChecker is implemented by dependencies that can report readiness
type HealthChecker interface {
	Health(ctx context.Context) error
}
