package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/spivocab/internal/cli"
	"github.com/at-ishikawa/spivocab/internal/pdf"
)

func newWordsCommand() *cobra.Command {
	wordsCommand := &cobra.Command{
		Use:   "words",
		Short: "Browse the word catalog",
	}

	wordsCommand.AddCommand(newWordsListCommand())
	wordsCommand.AddCommand(newWordsShowCommand())
	wordsCommand.AddCommand(newWordsExportCommand())
	return wordsCommand
}

func newWordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every word in catalog order",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if catalog.IsEmpty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No words in the catalog.")
				return nil
			}
			return cli.WriteWordList(cmd.OutOrStdout(), catalog.Words())
		},
	}
}

func newWordsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word id>",
		Short: "Show the details of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			word, ok := catalog.FindByID(args[0])
			if !ok {
				return fmt.Errorf("word %q not found", args[0])
			}
			cli.WriteWordDetail(cmd.OutOrStdout(), word)
			return nil
		},
	}
}

func newWordsExportCommand() *cobra.Command {
	var (
		outputDir   string
		generatePDF bool
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a Markdown study sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Outputs.WordSheetDirectory
			}

			paths, err := cli.ExportWordSheet(outputDir, cfg.Templates.WordSheetTemplate, catalog.Words(), generatePDF, cfg.PDF.FontPath)
			if errors.Is(err, pdf.ErrFontRequired) {
				return fmt.Errorf("set pdf.font_path in the config to export a PDF: %w", err)
			}
			if err != nil {
				return fmt.Errorf("cli.ExportWordSheet() > %w", err)
			}
			for _, path := range paths {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}
	command.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default is outputs.word_sheet_directory)")
	command.Flags().BoolVar(&generatePDF, "pdf", false, "also generate a PDF")
	return command
}
