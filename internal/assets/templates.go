// Package assets renders study sheets from embedded or user supplied templates.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

const wordSheetTemplateName = "word-sheet.md.go.tmpl"

//go:embed templates/word-sheet.md.go.tmpl
var fallbackWordSheetTemplate string

// WordSheetTemplate is the data passed to word sheet templates
type WordSheetTemplate struct {
	Title string
	Words []vocabulary.Word
}

func WriteWordSheet(output io.Writer, templatePath string, templateData WordSheetTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, wordSheetTemplateName, fallbackWordSheetTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
