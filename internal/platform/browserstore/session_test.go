package browserstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"photo-gallery/internal/domain/photo"
)

func TestSessionGate(t *testing.T) {
	ctx := context.Background()
	session := NewStorage()
	gate := NewSessionGate(session, "admin1234")

	assert.False(t, gate.Authenticated())

	assert.ErrorIs(t, gate.Login(ctx, "nope"), photo.ErrInvalidPassword)
	assert.False(t, gate.Authenticated())

	assert.NoError(t, gate.Login(ctx, "admin1234"))
	assert.True(t, gate.Authenticated())
	v, _ := session.GetItem(SessionKey)
	assert.Equal(t, "true", v)

	gate.Logout()
	assert.False(t, gate.Authenticated())
}

func TestSessionGate_FlagIsNotProtected(t *testing.T) {
	session := NewStorage()
	gate := NewSessionGate(session, "admin1234")

	// anyone who can write session storage passes the gate
	session.SetItem(SessionKey, "true")
	assert.True(t, gate.Authenticated())
}

func TestSessionGate_EmptySecretRejectsAll(t *testing.T) {
	gate := NewSessionGate(NewStorage(), "")
	assert.ErrorIs(t, gate.Login(context.Background(), ""), photo.ErrInvalidPassword)
	assert.False(t, gate.Authenticated())
}
