package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photo-gallery/internal/cli"
	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	obsCfg := observability.LoadConfig()
	obsCfg.LogLevel = cfg.Logging.Level
	obsCfg.LogFormat = "console"
	logger := observability.NewLoggerWithWriter(obsCfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = cli.RootCommand(&cli.Context{Config: cfg, Logger: logger}).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
