// Package server exposes the prayer-time pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/cache"
	"github.com/smokyabdulrahman/salah-times/internal/config"
	"github.com/smokyabdulrahman/salah-times/internal/dataset"
	"github.com/smokyabdulrahman/salah-times/internal/remote"
	"github.com/smokyabdulrahman/salah-times/internal/resolver"
)

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Server
	log    zerolog.Logger
	server *http.Server
	redis  *cache.RedisStore
}

// NewApp builds the dataset locator, remote fetcher and resolver from cfg
// and mounts them on a router.
func NewApp(ctx context.Context, cfg *config.Server, log zerolog.Logger) (*App, error) {
	zones, err := dataset.LoadZones(cfg.Dataset.ZonesFile)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Dataset.Dir); err != nil {
		log.Warn().Err(err).Str("dir", cfg.Dataset.Dir).Msg("dataset directory unavailable, local lookups will miss")
	}
	locator := dataset.NewLocator(os.DirFS(cfg.Dataset.Dir), zones)

	app := &App{cfg: cfg, log: log.With().Str("component", "bootstrap").Logger()}

	var store cache.Store
	if cfg.Redis.Enabled {
		app.redis = cache.NewRedisStore(cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.CacheTTL,
		})
		if err := app.redis.Ping(ctx); err != nil {
			if cerr := app.redis.Close(); cerr != nil {
				app.log.Warn().Err(cerr).Msg("closing redis")
			}
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = app.redis
	}

	client := api.NewClient().WithBaseURL(cfg.Remote.BaseURL)
	fetcher := remote.New(client, store, log)
	svc := resolver.New(locator, fetcher, log)

	app.server = NewRouter(cfg.HTTP, NewHandler(svc, locator, log), log)
	return app, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the HTTP server and blocks until ctx is done or the server fails.
func (a *App) Run(ctx context.Context) error {
	defer a.close()
	errCh := make(chan error, 1)

	go func() {
		a.log.Info().Str("address", a.cfg.HTTP.Address).Msg("http server starting")
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		timeout := a.cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.log.Info().Msg("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) close() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing redis")
	}
}
