// Package pdf converts Markdown study sheets into PDF files.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// ErrFontRequired is returned when no TrueType font is given. The core PDF
// fonts only cover cp1252, so kana and kanji would be lost.
var ErrFontRequired = errors.New("a UTF-8 TrueType font is required to draw Japanese text")

var (
	// font families of the mdtopdf light theme
	themeFamilies = []string{"Arial", "Courier"}
	fontStyles    = []string{"", "B", "I", "BI"}
)

// ConvertMarkdownToPDF converts a markdown file to PDF using mdtopdf package
// The PDF file will be created in the same directory as the markdown file
func ConvertMarkdownToPDF(markdownPath, fontPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	if fontPath == "" {
		return "", ErrFontRequired
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", fontPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	if err := RenderMarkdown(content, font, pdfPath); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

// RenderMarkdown writes content as a PDF file at pdfPath, drawing all text with font.
func RenderMarkdown(content, font []byte, pdfPath string) error {
	renderer, err := render(content, font)
	if err != nil {
		return err
	}
	if err := renderer.Pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("renderer.Pdf.OutputFileAndClose(%s) > %w", pdfPath, err)
	}
	return nil
}

func render(content, font []byte) (*mdtopdf.PdfRenderer, error) {
	if len(font) == 0 {
		return nil, ErrFontRequired
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", "", "", []mdtopdf.RenderOption{withUTF8Font(font)}, mdtopdf.LIGHT)
	if renderer.Pdf.GetFontDesc(themeFamilies[0], "").Ascent == 0 {
		return nil, errors.New("the font is not a readable TrueType font")
	}
	if err := renderer.Run(content); err != nil {
		return nil, fmt.Errorf("renderer.Run() > %w", err)
	}
	if err := renderer.Pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return renderer, nil
}

// withUTF8Font registers font under the theme's family names, so every styler
// of the renderer draws with it instead of a core font.
func withUTF8Font(font []byte) mdtopdf.RenderOption {
	return func(r *mdtopdf.PdfRenderer) {
		for _, family := range themeFamilies {
			for _, style := range fontStyles {
				r.Pdf.AddUTF8FontFromBytes(family, style, font)
			}
		}
		r.Pdf.SetFont(r.Normal.Font, r.Normal.Style, r.Normal.Size)
	}
}
