package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/cli"
	"github.com/at-ishikawa/spivocab/internal/statistics"
)

func newProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the learning progress from the attempt log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			app := bootstrap.New()
			defer func() {
				_ = app.Shutdown(context.Background())
			}()
			store, err := openStore(cmd.Context(), app, cfg)
			if err != nil {
				return err
			}

			progress, err := statistics.NewAggregator(store, catalog).Progress(cmd.Context())
			if err != nil {
				return fmt.Errorf("aggregator.Progress() > %w", err)
			}
			return cli.WriteProgressReport(cmd.OutOrStdout(), progress)
		},
	}
}
