package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, logger := bootstrap(os.Stdout, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// bootstrap loads .env files, then env config, and builds the service logger.
// A broken .env is reported on stderr and otherwise ignored.
func bootstrap(out, stderr io.Writer, envFiles ...string) (config.Config, *slog.Logger) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		fmt.Fprintf(stderr, "load .env: %v\n", err)
	}
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  out,
	})
	return cfg, logger
}
