package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"photo-gallery/internal/domain/photo"
)

// PhotoRepository is a Postgres-backed photo.Store. Records come back in
// insertion order.
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a repository over an open connection
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// List returns every record ordered by insertion
func (r *PhotoRepository) List(ctx context.Context) ([]photo.Photo, error) {
	query := `
		SELECT photo_id, url, title, description, tags, width, height, photographer, location
		FROM photos
		ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list photos: %v", photo.ErrPersistence, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	photos := []photo.Photo{}
	for rows.Next() {
		var p photo.Photo
		var tags pq.StringArray
		if err := rows.Scan(
			&p.ID,
			&p.URL,
			&p.Title,
			&p.Description,
			&tags,
			&p.Width,
			&p.Height,
			&p.Photographer,
			&p.Location,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan photo: %v", photo.ErrPersistence, err)
		}
		p.Tags = []string(tags)
		if p.Tags == nil {
			p.Tags = []string{}
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", photo.ErrPersistence, err)
	}
	return photos, nil
}

// Add appends a record
func (r *PhotoRepository) Add(ctx context.Context, p photo.Photo) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO photos (photo_id, url, title, description, tags, width, height, photographer, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.URL,
		p.Title,
		p.Description,
		pq.Array(tags),
		p.Width,
		p.Height,
		p.Photographer,
		p.Location,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert photo: %v", photo.ErrPersistence, err)
	}
	return nil
}

// Remove deletes the earliest record with id
func (r *PhotoRepository) Remove(ctx context.Context, id string) error {
	query := `
		DELETE FROM photos
		WHERE seq = (SELECT seq FROM photos WHERE photo_id = $1 ORDER BY seq ASC LIMIT 1)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete photo: %v", photo.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", photo.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", photo.ErrPhotoNotFound, id)
	}
	return nil
}

// Health pings the database
func (r *PhotoRepository) Health(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
