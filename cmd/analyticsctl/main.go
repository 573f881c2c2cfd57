package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lorrc/support-analytics/internal/config"
	"github.com/lorrc/support-analytics/internal/ctl"
	"github.com/lorrc/support-analytics/internal/infrastructure/logging"
)

func main() {
	// Each command checks the settings it needs.
	cfg := config.FromEnv()

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "analyticsctl",
		Environment: cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctl.NewApp(cfg, logger, os.Stdout).Command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
