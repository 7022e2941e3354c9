package browserstore

import (
	"context"

	"photo-gallery/internal/domain/photo"
)

// SessionKey holds "true" once the admin password was accepted
const SessionKey = "admin_authed_v1"

// SessionGate is the client-side admin check. Anyone with access to the
// session storage can set the flag, so it only hides the admin UI; the
// server login is the real check.
type SessionGate struct {
	session *Storage
	secret  string
}

// NewSessionGate creates a gate comparing against secret
func NewSessionGate(session *Storage, secret string) *SessionGate {
	return &SessionGate{
		session: session,
		secret:  secret,
	}
}

// Authenticated reports whether the session flag is set
func (g *SessionGate) Authenticated() bool {
	v, ok := g.session.GetItem(SessionKey)
	return ok && v == "true"
}

// Login sets the session flag when password matches
func (g *SessionGate) Login(ctx context.Context, password string) error {
	if err := photo.CheckPassword(g.secret, password); err != nil {
		return err
	}
	g.session.SetItem(SessionKey, "true")
	return nil
}

// Logout clears the session flag
func (g *SessionGate) Logout() {
	g.session.RemoveItem(SessionKey)
}
