package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/adapters/telemetry"
	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 5 * time.Second

// App owns the HTTP front and the node registry lifecycle.
type App struct {
	store     *config.Store
	handler   http.Handler
	registry  *Registry
	telemetry *telemetry.Provider
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	store *config.Store,
	handler http.Handler,
	registry *Registry,
	provider *telemetry.Provider,
	logger ports.Logger,
) *App {
	return &App{
		store:     store,
		handler:   handler,
		registry:  registry,
		telemetry: provider,
		logger:    logger,
	}
}

// Serve runs the gateway until ctx is cancelled, then drains: pending
// rewrites are flushed before the listener closes so no edit is lost
// on shutdown.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.store.Current()
	if !cfg.IsConfigured() {
		a.logger.Warn("no remote instance configured, forwarding disabled until the config names one")
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("listening on " + cfg.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerClosed.Error())
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		a.registry.Flush()
		a.registry.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "graceful shutdown failed")
		}
		if a.telemetry != nil {
			_ = a.telemetry.Shutdown(shutdownCtx)
		}
		return nil
	})

	return g.Wait()
}
