package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConnection(t *testing.T) {
	tests := []struct {
		name    string
		dbURL   string
		wantErr error
	}{
		{
			name:    "empty database URL",
			dbURL:   "",
			wantErr: ErrMissingDatabaseURL,
		},
		{
			name:  "invalid database URL",
			dbURL: "invalid-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := NewConnection(tt.dbURL)
			assert.Error(t, err)
			assert.Nil(t, db)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
