package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/cli"
)

func newMemorizeCommand() *cobra.Command {
	var start int
	command := &cobra.Command{
		Use:   "memorize",
		Short: "Flashcard session that records how well you remember each word",
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

			memorizeCLI, err := cli.NewMemorizeCLI(catalog, store, start)
			if err != nil {
				return fmt.Errorf("cli.NewMemorizeCLI() > %w", err)
			}
			fmt.Println("Enter to show the answer, 2/1/0 to rate, n/p to move, q to quit.")
			fmt.Println()
			return memorizeCLI.Run(cmd.Context(), memorizeCLI)
		},
	}
	command.Flags().IntVar(&start, "start", 1, "1-based position of the first word")
	return command
}
