package implementations

import (
	"context"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

// AuthServiceImpl checks the shared admin password. It is the only real
// access check; there is no lockout or hashing.
type AuthServiceImpl struct {
	secret string
	logger *observability.Logger
}

// NewAuthService creates the gate for secret. An empty secret rejects everyone.
func NewAuthService(secret string, logger *observability.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		secret: secret,
		logger: logger,
	}
}

// Login returns photo.ErrInvalidPassword unless password matches
func (a *AuthServiceImpl) Login(ctx context.Context, password string) error {
	if err := photo.CheckPassword(a.secret, password); err != nil {
		a.logger.Warn(ctx).Bool("secret_configured", a.secret != "").Msg("Admin login rejected")
		return err
	}
	a.logger.Info(ctx).Msg("Admin login accepted")
	return nil
}
