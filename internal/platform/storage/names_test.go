package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"stored upload", "1700000000000_sunset.jpg", false},
		{"spaces allowed", "1700000000000_my photo.png", false},
		{"empty", "", true},
		{"traversal", "..", true},
		{"double dot inside a name", "1_my..photo.jpg", false},
		{"forward slash", "a/b.jpg", true},
		{"backslash", `a\b.jpg`, true},
		{"hidden", ".env", true},
		{"null byte", "a\x00.jpg", true},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
