// Package server ties the HTTP listener and background maintenance
// together under one lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediatheque/internal/metadata"
)

// Config for the runner.
type Config struct {
	Addr          string
	PruneInterval time.Duration
}

// Runner manages the HTTP server and the metadata cache pruner.
type Runner struct {
	handler http.Handler
	cache   *metadata.Cache
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. cache may be nil when metadata
// lookups are disabled.
func NewRunner(handler http.Handler, cache *metadata.Cache, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	return &Runner{
		handler: handler,
		cache:   cache,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts all components.
// It blocks until the context is canceled or an error occurs.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{Addr: r.config.Addr, Handler: r.handler}

	g.Go(func() error {
		r.logger.Info("http server starting", "addr", r.config.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if r.cache != nil {
		g.Go(func() error {
			r.runPruner(ctx)
			return nil
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) runPruner(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.cache.Prune(ctx)
			if err != nil {
				r.logger.Error("cache prune failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned expired metadata", "entries", n)
			}
		}
	}
}
