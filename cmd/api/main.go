package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wolfman30/yt-re-growth-api/cmd/mainconfig"
	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

func main() {
	// Load configuration
	cfg, logger := mainconfig.Load()
	logger.Info("starting yt-re-growth API server",
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
	)

	api, cleanup := mainconfig.BuildAPI(context.Background(), cfg, logger)
	defer cleanup()

	srv := newServer(cfg, api)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("server error", "error", err)
		cleanup()
		os.Exit(1)
	}

	if err := shutdown(srv, logger, 30*time.Second); err != nil {
		cleanup()
		os.Exit(1)
	}
	fmt.Println("Server exited gracefully")
}

func newServer(cfg *appconfig.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func shutdown(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
