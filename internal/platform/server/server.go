// Package server builds the HTTP server and runs it until its context ends.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 30 * time.Second

// New creates a server listening on host:port. A nil cfg keeps the 15s/15s/60s defaults.
func New(host, port string, handler http.Handler, cfg *config.ServerConfig) *http.Server {
	readTimeout, writeTimeout, idleTimeout := 15*time.Second, 15*time.Second, 60*time.Second
	if cfg != nil {
		readTimeout, writeTimeout, idleTimeout = cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout
	}

	return &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, srv *http.Server, logger *observability.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx).Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx).Msg("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
