package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/cli"
	"github.com/at-ishikawa/spivocab/internal/config"
)

// BackendFlag is a storage backend name.
type BackendFlag string

// Set implements pflag.Value.
func (b *BackendFlag) Set(v string) error {
	switch v {
	case config.StorageBackendFile, config.StorageBackendSQLite, config.StorageBackendMySQL:
		*b = BackendFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, config.StorageBackendFile, config.StorageBackendSQLite, config.StorageBackendMySQL)
	}
	return nil
}

// String implements pflag.Value.
func (b *BackendFlag) String() string {
	if b == nil {
		return ""
	}
	return string(*b)
}

// Type implements pflag.Value.
func (b *BackendFlag) Type() string {
	return "BackendFlag"
}

var (
	_ pflag.Value = (*BackendFlag)(nil)
)

func newAttemptsCommand() *cobra.Command {
	attemptsCommand := &cobra.Command{
		Use:   "attempts",
		Short: "Manage the attempt log",
	}

	attemptsCommand.AddCommand(newAttemptsExportCommand())
	attemptsCommand.AddCommand(newAttemptsCopyCommand())
	return attemptsCommand
}

func newAttemptsExportCommand() *cobra.Command {
	var outputFile string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the valid attempts as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
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

			output, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", outputFile, err)
			}
			defer func() {
				_ = output.Close()
			}()

			count, err := cli.ExportAttempts(cmd.Context(), output, store)
			if err != nil {
				return fmt.Errorf("cli.ExportAttempts() > %w", err)
			}
			if err := output.Close(); err != nil {
				return fmt.Errorf("output.Close(%s) > %w", outputFile, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d attempts to %s\n", count, outputFile)
			return nil
		},
	}
	command.Flags().StringVarP(&outputFile, "output", "o", "", "output YAML file")
	_ = command.MarkFlagRequired("output")
	return command
}

func newAttemptsCopyCommand() *cobra.Command {
	var to BackendFlag
	command := &cobra.Command{
		Use:   "copy",
		Short: "Copy the attempt log into another storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if string(to) == cfg.Storage.Backend {
				return fmt.Errorf("the destination backend %q is the configured backend", to)
			}

			app := bootstrap.New()
			defer func() {
				_ = app.Shutdown(context.Background())
			}()
			source, err := openStore(cmd.Context(), app, cfg)
			if err != nil {
				return err
			}
			slot, err := app.OpenSlot(cmd.Context(), afero.NewOsFs(), cfg, string(to))
			if err != nil {
				return fmt.Errorf("app.OpenSlot(%s) > %w", to, err)
			}

			count, err := cli.CopyAttempts(cmd.Context(), source, attempt.NewStore(slot))
			if err != nil {
				return fmt.Errorf("cli.CopyAttempts() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %d attempts from %s to %s\n", count, cfg.Storage.Backend, to)
			return nil
		},
	}
	command.Flags().Var(&to, "to", "destination backend. Options: file, sqlite, mysql")
	_ = command.MarkFlagRequired("to")
	return command
}
