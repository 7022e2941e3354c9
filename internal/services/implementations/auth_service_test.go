package implementations

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

func TestAuthService_Login(t *testing.T) {
	var logs bytes.Buffer
	logger := observability.NewLoggerWithWriter(observability.Config{LogLevel: "debug"}, &logs)
	svc := NewAuthService("s3cret-pass", logger)

	assert.NoError(t, svc.Login(context.Background(), "s3cret-pass"))
	assert.ErrorIs(t, svc.Login(context.Background(), "guess"), photo.ErrInvalidPassword)

	assert.NotContains(t, logs.String(), "s3cret-pass")
	assert.NotContains(t, logs.String(), "guess")
}

func TestAuthService_EmptySecret(t *testing.T) {
	svc := NewAuthService("", observability.NewNopLogger())
	assert.ErrorIs(t, svc.Login(context.Background(), ""), photo.ErrInvalidPassword)
}
