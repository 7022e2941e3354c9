// Package jsondb persists gallery records to a single JSON document of the
// form {"photos": [...]}, rewritten wholesale on every change.
package jsondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

type document struct {
	Photos []photo.Photo `json:"photos"`
}

// Store is a JSON-file backed photo.Store. Writers within one process are
// serialized; separate processes sharing the file can still lose updates.
type Store struct {
	path     string
	mu       sync.Mutex
	logger   *observability.Logger
	readFile func(name string) ([]byte, error)
}

// New creates a store over the file at path. The file need not exist.
func New(path string, logger *observability.Logger) *Store {
	return &Store{
		path:     path,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// List returns every record. A missing, corrupt or unreadable file yields
// an empty list.
func (s *Store) List(ctx context.Context) ([]photo.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.read(ctx)
	if err != nil {
		s.logger.Warn(ctx).Err(err).Str("path", s.path).Msg("Failed to read data file, treating as empty")
		return []photo.Photo{}, nil
	}
	return photos, nil
}

// Add appends a record and rewrites the file. It fails without writing when
// the existing file cannot be read, so records are never dropped.
func (s *Store) Add(ctx context.Context, p photo.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.read(ctx)
	if err != nil {
		return err
	}
	return s.write(append(photos, p))
}

// Remove deletes the first record with id and rewrites the file
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.read(ctx)
	if err != nil {
		return err
	}
	for i := range photos {
		if photos[i].ID == id {
			photos = append(photos[:i], photos[i+1:]...)
			return s.write(photos)
		}
	}
	return fmt.Errorf("%w: %s", photo.ErrPhotoNotFound, id)
}

// Health reports whether the data directory is usable
func (s *Store) Health(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", photo.ErrPersistence, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", photo.ErrPersistence, dir)
	}
	return nil
}

// read loads the document. A missing file is empty and a corrupt one is
// reset to empty; any other read failure is returned as ErrPersistence.
func (s *Store) read(ctx context.Context) ([]photo.Photo, error) {
	data, err := s.readFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []photo.Photo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read data file: %v", photo.ErrPersistence, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn(ctx).Err(err).Str("path", s.path).Msg("Data file is corrupt, treating as empty")
		return []photo.Photo{}, nil
	}

	photos := make([]photo.Photo, 0, len(doc.Photos))
	for _, p := range doc.Photos {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// write replaces the file through a temp file and rename so readers never
// observe a partial document
func (s *Store) write(photos []photo.Photo) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", photo.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", photo.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Photos: photos}); err != nil {
		_ = tmp.Close() //nolint:errcheck // encode error takes precedence
		return fmt.Errorf("%w: failed to encode records: %v", photo.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to flush data file: %v", photo.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace data file: %v", photo.ErrPersistence, err)
	}
	return nil
}
