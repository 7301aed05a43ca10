// Package main is the entrypoint for the jobshopd API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcastellanos/jobshopd/internal/api"
	"github.com/jcastellanos/jobshopd/internal/api/handler"
	"github.com/jcastellanos/jobshopd/internal/config"
	"github.com/jcastellanos/jobshopd/internal/engine"
	"github.com/jcastellanos/jobshopd/internal/instance"
	"github.com/jcastellanos/jobshopd/internal/metrics"
	"github.com/jcastellanos/jobshopd/internal/solver"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "storage_dir", cfg.Storage.InstanceDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := engine.NewRegistry(cfg.Solver.MiniZincBin)
	eng := engine.NewMiniZinc(cfg.Solver.MiniZincBin, registry)
	store := instance.NewStore(cfg.Storage.InstanceDir)
	mx := metrics.New()

	svc := solver.New(store, eng, mx, logger, cfg.Solver.MaxTimeLimit)

	router := api.NewRouter(api.Dependencies{
		CORSOrigins:    cfg.Server.CORSOrigins,
		HealthHandler:  handler.NewHealthHandler(registry),
		SolveHandler:   handler.NewSolveHandler(svc),
		MetricsHandler: mx.Handler(),
	})

	// The write timeout must outlast the longest permitted solve. An
	// uncapped budget leaves it disabled.
	writeTimeout := time.Duration(0)
	if cfg.Solver.MaxTimeLimit > 0 {
		writeTimeout = cfg.Solver.MaxTimeLimit + time.Minute
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
