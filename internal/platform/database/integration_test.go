package database

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

func setupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDBURL := os.Getenv("TEST_DATABASE_URL")
	if testDBURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := NewConnection(testDBURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cleanupTables(t, db)
	require.NoError(t, RunMigrations(context.Background(), db, observability.NewNopLogger()))
	return db
}

func cleanupTables(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS photos CASCADE",
		"DROP TABLE IF EXISTS schema_migrations CASCADE",
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := setupTestDatabase(t)

	err := RunMigrations(context.Background(), db, observability.NewNopLogger())
	assert.NoError(t, err, "second run applies nothing")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestPhotoRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPhotoRepository(setupTestDatabase(t))

	photos, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)

	first := photo.Photo{
		ID:           "1700000000000",
		URL:          "http://localhost:4000/uploads/1700000000000_a.jpg",
		Title:        "Dunes",
		Description:  "Evening",
		Tags:         []string{"desert", "sunset"},
		Photographer: "Unknown",
		Location:     "Unknown",
	}
	second := photo.Photo{ID: "2", URL: "u", Title: "Untitled", Tags: []string{}}
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))

	photos, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []photo.Photo{first, second}, photos)

	require.NoError(t, repo.Remove(ctx, first.ID))
	assert.ErrorIs(t, repo.Remove(ctx, first.ID), photo.ErrPhotoNotFound)

	photos, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []photo.Photo{second}, photos)

	assert.NoError(t, repo.Health(ctx))
}

func TestPhotoRepository_ClosedConnection(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewPhotoRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, photo.ErrPersistence)
	assert.ErrorIs(t, repo.Add(context.Background(), photo.Photo{ID: "x"}), photo.ErrPersistence)
}
