// Package server runs the in-memory PlanPlant stub backend as a standalone
// HTTP server, so the CLI can be used without the real backend.
// It handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/planplant/internal/backendtest"
	"github.com/dmitrijs2005/planplant/internal/logging"
	"github.com/dmitrijs2005/planplant/internal/server/config"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend *backendtest.Backend
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	b := backendtest.New(
		backendtest.WithVersion(c.APIVersion),
		backendtest.WithSecret(c.SecretKey),
		backendtest.WithTokenValidity(c.TokenValidity),
		backendtest.WithS3(backendtest.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
		}),
		backendtest.WithLogger(logger),
	)
	return &App{config: c, logger: logger, backend: b}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address and serves until a signal arrives
// or ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.config.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve serves the stub API on ln until ctx is done, then shuts down.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	if err := app.backend.SetBaseURL(ctx, app.config.PublicURL); err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           app.backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var (
		wg       sync.WaitGroup
		serveErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.logger.Info(ctx, "Starting stub server", "addr", ln.Addr().String(), "public_url", app.config.PublicURL)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server failed", "error", err)
			serveErr = err
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown failed", "error", err)
	}
	wg.Wait()
	app.logger.Info(ctx, "Stub server stopped")
	return serveErr
}
