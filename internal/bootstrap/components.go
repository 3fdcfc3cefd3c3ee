package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/config"
	"github.com/at-ishikawa/spivocab/internal/database"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// LoadCatalog loads the word catalog from the configured URL, or the file when no URL is set.
func LoadCatalog(ctx context.Context, fs afero.Fs, cfg config.CatalogConfig) (*vocabulary.Catalog, error) {
	if cfg.URL != "" {
		loader := vocabulary.NewRemoteLoader(fs, vocabulary.RemoteConfig{
			URL:            cfg.URL,
			CacheDirectory: cfg.CacheDirectory,
			Timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
			RetryAttempts:  cfg.RetryAttempts,
		})
		catalog, err := loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.URL, err)
		}
		return catalog, nil
	}

	catalog, err := vocabulary.NewLoader(fs).LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", cfg.Path, err)
	}
	return catalog, nil
}

// OpenSlot opens the storage slot of a backend.
// Database connections are closed by a shutdown hook.
func (a *App) OpenSlot(ctx context.Context, fs afero.Fs, cfg *config.Config, backend string) (attempt.Slot, error) {
	switch backend {
	case config.StorageBackendFile:
		return attempt.NewFileSlot(fs, cfg.Storage.FilePath), nil
	case config.StorageBackendSQLite, config.StorageBackendMySQL:
		db, err := database.Open(cfg.Database.ForBackend(backend))
		if err != nil {
			return nil, fmt.Errorf("database.Open > %w", err)
		}
		a.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		if err := database.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("database.Migrate > %w", err)
		}
		return attempt.NewDBSlot(db, cfg.Storage.SlotKey), nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", backend)
}

// OpenStore opens the attempt log of the configured backend.
func (a *App) OpenStore(ctx context.Context, fs afero.Fs, cfg *config.Config) (*attempt.Store, error) {
	slot, err := a.OpenSlot(ctx, fs, cfg, cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	return attempt.NewStore(slot), nil
}
