package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/server"
	"photo-gallery/internal/services"
	"photo-gallery/internal/web/handlers"

	"github.com/joho/godotenv"
)

const telemetryShutdownTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	obsCfg := observability.LoadConfig()
	obsCfg.Environment = cfg.Environment
	obsCfg.LogLevel = cfg.Logging.Level
	obsCfg.LogFormat = cfg.Logging.Format
	logger := observability.NewLogger(obsCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, obsCfg, logger)
	stop()
	if err != nil {
		logger.Error(context.Background()).Err(err).Msg("Server failed")
		os.Exit(1)
	}
}

// run serves until ctx ends. Telemetry and backends opened here are always
// released before it returns.
func run(ctx context.Context, cfg *config.Config, obsCfg observability.Config, logger *observability.Logger) error {
	provider, err := observability.NewProvider(ctx, obsCfg, logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx).Err(err).Msg("Failed to flush telemetry")
		}
	}()

	container, err := services.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize services container: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn(context.Background()).Err(err).Msg("Failed to close services container")
		}
	}()

	opts := []handlers.Option{handlers.WithTracer(provider.Tracer("photo-gallery/http"))}
	if obsCfg.MetricsEnabled {
		metrics, err := observability.NewHTTPMetrics(provider.Meter("photo-gallery/http"))
		if err != nil {
			return fmt.Errorf("register HTTP metrics: %w", err)
		}
		opts = append(opts, handlers.WithMetrics(metrics))
	}

	handler := handlers.NewWithContainer(container, opts...)
	srv := server.New("", cfg.Port, handler.Routes(), cfg.Server)
	if err := server.Run(ctx, srv, logger); err != nil {
		return err
	}
	logger.Info(ctx).Msg("Server exited")
	return nil
}
