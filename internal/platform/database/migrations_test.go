package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := EmbeddedMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "create photos", migrations[0].Description)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS photos")
	assert.Equal(t, "002", migrations[1].Version)
}

func TestLoadMigrationsFromFS(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []string
		wantErr bool
	}{
		{
			name: "sorted by version",
			files: fstest.MapFS{
				"m/010_later.sql":   {Data: []byte("SELECT 2;")},
				"m/002_earlier.sql": {Data: []byte("SELECT 1;")},
				"m/README.md":       {Data: []byte("ignored")},
			},
			want: []string{"002", "010"},
		},
		{
			name: "invalid filename",
			files: fstest.MapFS{
				"m/nounderscore.sql": {Data: []byte("SELECT 1;")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrations, err := LoadMigrationsFromFS(tt.files, "m")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var versions []string
			for _, m := range migrations {
				versions = append(versions, m.Version)
			}
			assert.Equal(t, tt.want, versions)
		})
	}
}
