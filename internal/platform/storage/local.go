package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"photo-gallery/internal/domain/photo"
)

// LocalStore keeps uploads as flat files in one directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the upload directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes r to name, replacing any existing file. A partial write is
// removed before returning.
func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	if err := validateName(name); err != nil {
		return err
	}

	target := filepath.Join(s.dir, name)
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()         //nolint:errcheck // copy error takes precedence
		_ = os.Remove(target) //nolint:errcheck // best effort
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target) //nolint:errcheck // best effort
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

// Open returns the stored bytes for name
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", photo.ErrBlobNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes name
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", photo.ErrBlobNotFound, name)
	}
	return err
}

// Health reports whether the upload directory is still present
func (s *LocalStore) Health(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
