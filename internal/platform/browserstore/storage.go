// Package browserstore reproduces the client-side variant of the gallery:
// records kept as one JSON array in a key/value "local storage" and an admin
// flag in a separate "session storage". It is a UX convenience only; nothing
// stored here is protected.
package browserstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	gocache "github.com/patrickmn/go-cache"
)

// Storage is a string key/value area with no expiry, the analogue of a
// browser's localStorage or sessionStorage
type Storage struct {
	c *gocache.Cache
}

// NewStorage returns an empty storage area
func NewStorage() *Storage {
	// no cleanup interval: items never expire, so no janitor goroutine
	return &Storage{c: gocache.New(gocache.NoExpiration, 0)}
}

// GetItem returns the value under key
func (s *Storage) GetItem(key string) (string, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// SetItem stores value under key
func (s *Storage) SetItem(key, value string) {
	s.c.Set(key, value, gocache.NoExpiration)
}

// RemoveItem deletes key
func (s *Storage) RemoveItem(key string) {
	s.c.Delete(key)
}

// Clear empties the area
func (s *Storage) Clear() {
	s.c.Flush()
}

// LoadFile replaces the area with the snapshot at path. A missing file
// leaves the area empty.
func (s *Storage) LoadFile(path string) error {
	s.c.Flush()
	err := s.c.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load storage snapshot: %w", err)
	}
	return nil
}

// SaveFile writes a snapshot of the area to path
func (s *Storage) SaveFile(path string) error {
	if err := s.c.SaveFile(path); err != nil {
		_ = os.Remove(path) //nolint:errcheck // drop the partial snapshot
		return fmt.Errorf("failed to save storage snapshot: %w", err)
	}
	return nil
}
