// Package storage holds the upload blob backends: a local directory and an
// S3-compatible bucket.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned for object names that could escape the upload root
var ErrInvalidName = errors.New("invalid object name")

const maxNameLength = 255

// validateName accepts a single flat object name. Stored names are produced by
// photo.StoredName, so separators or a leading dot (which covers "..") mean
// hostile input from the serving route.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: too long", ErrInvalidName)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: path separators not allowed", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: hidden files not allowed", ErrInvalidName)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: null bytes not allowed", ErrInvalidName)
	}
	return nil
}
