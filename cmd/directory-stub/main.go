package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-directory/internal/config"
	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/stub"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("directory-stub: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Directory.LogLevel)
	if err != nil {
		return err
	}

	seed := []domain.Employee{}
	if cfg.Stub.SeedFile != "" {
		if seed, err = stub.LoadSeed(cfg.Stub.SeedFile); err != nil {
			return err
		}
	}

	h := stub.NewHandler(seed, logger)
	h.RegisterRoutes(cfg.Directory.ListPath, cfg.Directory.UpdatePath)

	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           h.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "stub listening", "addr", srv.Addr, "employees", len(seed))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info(shutdownCtx, "shutting down")
	return srv.Shutdown(shutdownCtx)
}
