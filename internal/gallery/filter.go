package gallery

import "photo-gallery/internal/domain/photo"

// Criteria selects records by tag and free-text query. Empty fields match all.
type Criteria struct {
	Tag   string
	Query string
}

// IsZero reports whether the criteria match everything
func (c Criteria) IsZero() bool {
	return c.Tag == "" && c.Query == ""
}

// Filter returns records satisfying c, preserving input order
func Filter(records []photo.Photo, c Criteria) []photo.Photo {
	out := make([]photo.Photo, 0, len(records))
	for i := range records {
		if c.Tag != "" && !records[i].HasTag(c.Tag) {
			continue
		}
		if !records[i].Matches(c.Query) {
			continue
		}
		out = append(out, records[i])
	}
	return out
}
