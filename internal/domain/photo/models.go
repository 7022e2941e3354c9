package photo

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode/utf8"
)

// Photo represents a gallery image record
type Photo struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Photographer string   `json:"photographer,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// CreatePhotoRequest carries the metadata fields of an upload
type CreatePhotoRequest struct {
	Title        string
	Description  string
	Tags         string
	Photographer string
	Location     string
}

// Domain errors
var (
	ErrInvalidPhotoData  = errors.New("invalid photo data")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrMissingFile       = errors.New("no file uploaded")
	ErrPersistence       = errors.New("persistence failure")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrBlobNotFound      = errors.New("stored file not found")
	ErrCacheMiss         = errors.New("cache miss")
	ErrDownloadFailed    = errors.New("download failed")
)

// Defaults applied through the upload path
const (
	DefaultTitle        = "Untitled"
	DefaultPhotographer = "Unknown"
	DefaultLocation     = "Unknown"
	MaxTitleLen         = 255
)

// srcSetWidths are the widths offered to responsive clients
var srcSetWidths = []int{400, 800, 1200, 1600}

// Validate validates the photo record
func (p *Photo) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidPhotoData)
	}
	if p.URL == "" {
		return fmt.Errorf("%w: url cannot be empty", ErrInvalidPhotoData)
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title too long (max %d characters)", ErrInvalidPhotoData, MaxTitleLen)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: dimensions cannot be negative", ErrInvalidPhotoData)
	}
	return nil
}

// HasTag returns true if the photo carries the tag exactly
func (p *Photo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// UniqueTags returns the tags in first-seen order with duplicates removed
func (p *Photo) UniqueTags() []string {
	seen := make(map[string]struct{}, len(p.Tags))
	out := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Matches reports whether the title or description contains query, ignoring case
func (p *Photo) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// DownloadName builds the attachment filename offered for this photo
func (p *Photo) DownloadName() string {
	base := strings.Join(strings.Fields(p.Title), "_")
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%s%s", base, p.ID, URLExtension(p.URL))
}

// URLExtension guesses an image extension from a URL, defaulting to .jpg
func URLExtension(url string) string {
	lower := strings.ToLower(url)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.Contains(lower, ext) {
			return ext
		}
	}
	return ".jpg"
}

// SrcSet returns a responsive srcset for URLs that accept width parameters.
// Relative URLs (local uploads) yield an empty string.
func SrcSet(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ""
	}
	base := url
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	parts := make([]string, 0, len(srcSetWidths))
	for _, w := range srcSetWidths {
		parts = append(parts, fmt.Sprintf("%s?w=%d&fit=crop&q=80&fm=webp %dw", base, w, w))
	}
	return strings.Join(parts, ", ")
}

// ParseTags splits a comma separated list, trimming each entry and dropping
// empty ones. Duplicates are preserved. Absent input yields an empty slice.
func ParseTags(raw string) []string {
	tags := []string{}
	if raw == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// AvailableTags returns the sorted set of tags across photos
func AvailableTags(photos []Photo) []string {
	set := make(map[string]struct{})
	for i := range photos {
		for _, t := range photos[i].Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SetDefaults fills absent metadata with upload defaults
func (r *CreatePhotoRequest) SetDefaults() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if strings.TrimSpace(r.Photographer) == "" {
		r.Photographer = DefaultPhotographer
	}
	if strings.TrimSpace(r.Location) == "" {
		r.Location = DefaultLocation
	}
}

// Validate validates the upload metadata
func (r *CreatePhotoRequest) Validate() error {
	if utf8.RuneCountInString(r.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title too long (max %d characters)", ErrInvalidPhotoData, MaxTitleLen)
	}
	return nil
}

// NewPhoto builds the record an upload produces. Dimensions are unknown.
func (r *CreatePhotoRequest) NewPhoto(id, url string) Photo {
	return Photo{
		ID:           id,
		URL:          url,
		Title:        r.Title,
		Description:  r.Description,
		Tags:         ParseTags(r.Tags),
		Photographer: r.Photographer,
		Location:     r.Location,
	}
}

// StoredName returns the on-disk name for an upload: {millis}_{basename}
func StoredName(millis int64, original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d_%s", millis, base)
}
