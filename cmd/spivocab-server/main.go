package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/config"
	"github.com/at-ishikawa/spivocab/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	app := bootstrap.New()
	ctx := context.Background()
	fs := afero.NewOsFs()

	catalog, err := bootstrap.LoadCatalog(ctx, fs, cfg.Catalog)
	if err != nil {
		return fmt.Errorf("bootstrap.LoadCatalog() > %w", err)
	}
	store, err := app.OpenStore(ctx, fs, cfg)
	if err != nil {
		return errors.Join(fmt.Errorf("app.OpenStore() > %w", err), app.Shutdown(ctx))
	}

	handler, err := server.NewVocabularyHandler(catalog, store)
	if err != nil {
		return errors.Join(fmt.Errorf("server.NewVocabularyHandler() > %w", err), app.Shutdown(ctx))
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.NewHTTPHandler(handler, cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(ctx)
	})

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server", "addr", httpServer.Addr, "words", catalog.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("SPIVOCAB_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
