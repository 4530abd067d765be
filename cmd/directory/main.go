package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"employee-directory/internal/app"
	"employee-directory/internal/config"
	"employee-directory/internal/logging"
	"employee-directory/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("directory: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file or nowhere
	var w io.Writer = io.Discard
	if cfg.Directory.LogFile != "" {
		f, err := os.OpenFile(cfg.Directory.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	logger, err := logging.New(w, cfg.Directory.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := app.Open(ctx, cfg, app.Destinations{}, logger)
	if err != nil {
		return err
	}
	logger.Info(ctx, "directory started",
		"user", dir.Identity().UserName,
		"role", dir.Identity().Role,
		"base_url", cfg.Directory.BaseURL,
	)

	return tui.Run(ctx, dir)
}
