package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/spivocab/internal/assets"
	"github.com/at-ishikawa/spivocab/internal/pdf"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

const wordSheetFileName = "spi-words.md"

// ExportWordSheet writes the Markdown study sheet of words into outputDir and,
// when withPDF is set, converts it to a PDF next to it drawn with the TrueType
// font at fontPath. It returns the paths written.
func ExportWordSheet(outputDir, templatePath string, words []vocabulary.Word, withPDF bool, fontPath string) ([]string, error) {
	if withPDF && fontPath == "" {
		return nil, pdf.ErrFontRequired
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
	}

	markdownPath := filepath.Join(outputDir, wordSheetFileName)
	output, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := assets.WriteWordSheet(output, templatePath, assets.WordSheetTemplate{
		Title: "SPI 語彙",
		Words: words,
	}); err != nil {
		return nil, fmt.Errorf("assets.WriteWordSheet > %w", err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("output.Close(%s) > %w", markdownPath, err)
	}

	paths := []string{markdownPath}
	if !withPDF {
		return paths, nil
	}
	pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath, fontPath)
	if err != nil {
		return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF > %w", err)
	}
	return append(paths, pdfPath), nil
}
