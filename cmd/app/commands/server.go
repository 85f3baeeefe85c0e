package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/cachevault/internal/app"
	"github.com/allisson/cachevault/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may take once shutdown starts.
const shutdownTimeout = 15 * time.Second

// runnable is a server that blocks in Start until Shutdown is called.
type runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the entry API and, when enabled, the metrics server.
// Blocks until receiving SIGINT/SIGTERM or until a server fails, then shuts both down.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	container, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))
	defer closeContainer(container, logger)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	entryHandler, err := container.EntryHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize entry handler: %w", err)
	}

	metricsProvider, err := container.MetricsProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics provider: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server.SetupRouter(ctx, cfg, entryHandler, metricsProvider)

	servers := []runnable{server}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	return serve(ctx, logger, servers...)
}

// serve runs every server until ctx ends or one of them fails, then shuts all of them
// down. It returns the first start failure joined with any shutdown failures.
func serve(ctx context.Context, logger *slog.Logger, servers ...runnable) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		if len(shutdownErrors) > 0 {
			return fmt.Errorf("server shutdown: %w", errors.Join(shutdownErrors...))
		}
		return nil
	})

	return g.Wait()
}
