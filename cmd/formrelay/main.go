// Command formrelay serves the contact form and the mail relay it posts to.
//
// Everything is configured through the environment; see package config.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formrelay"
	"github.com/dmitrymomot/formrelay/config"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

// run blocks until SIGINT, SIGTERM or ctx cancellation.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	app, cleanup, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := append([]formrelay.RunOption{
		formrelay.WithContext(ctx),
		formrelay.Logger(log),
		formrelay.ShutdownTimeout(cfg.App.ShutdownTimeout),
	}, cleanup...)
	opts = append(opts, formrelay.ShutdownHook(logger.FlushSentry(cfg.App.ShutdownTimeout)))

	return app.Run(cfg.App.Address, opts...)
}
