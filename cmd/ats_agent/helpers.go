package main

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-tailor/internal/backend"
	"github.com/jonathan/ats-tailor/internal/config"
	"github.com/jonathan/ats-tailor/internal/rendering"
	"github.com/jonathan/ats-tailor/internal/session"
	"github.com/jonathan/ats-tailor/internal/store"
)

// openStore picks the storage backend: postgres when a database URL is
// configured, sqlite otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		st, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return st, nil
	}

	st, err := store.NewSQLite(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	return st, nil
}

// buildPipeline wires the session pipeline from configuration. The backend
// and PDF renderer are optional capabilities.
func buildPipeline(cfg *config.Config, st store.Store, token string) *session.Pipeline {
	caps := session.Capabilities{Store: st}
	if cfg.BackendURL != "" {
		caps.Backend = backend.NewClient(cfg.BackendURL, cfg.BackendKey, token)
	}
	caps.Renderer = rendering.NewChromeRenderer(cfg.Verbose)
	return session.NewPipeline(caps)
}
