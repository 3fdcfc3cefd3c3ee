package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/config"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadCatalog(ctx context.Context) (*config.Config, *vocabulary.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := bootstrap.LoadCatalog(ctx, afero.NewOsFs(), cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap.LoadCatalog() > %w", err)
	}
	return cfg, catalog, nil
}

// openStore opens the configured attempt store. Close the app to release it.
func openStore(ctx context.Context, app *bootstrap.App, cfg *config.Config) (*attempt.Store, error) {
	store, err := app.OpenStore(ctx, afero.NewOsFs(), cfg)
	if err != nil {
		return nil, fmt.Errorf("app.OpenStore() > %w", err)
	}
	return store, nil
}
