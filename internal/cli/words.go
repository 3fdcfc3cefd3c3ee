package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// WriteWordList prints one line per word in catalog order
func WriteWordList(output io.Writer, words []vocabulary.Word) error {
	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tWORD\tREADING\tMEANING\tTAGS")
	for _, word := range words {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			word.ID,
			word.Word,
			word.Reading,
			word.MeaningShort,
			strings.Join(word.Tags, ","),
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("w.Flush() > %w", err)
	}
	return nil
}

// WriteWordDetail prints every field of a word the way the detail page shows it
func WriteWordDetail(output io.Writer, word vocabulary.Word) {
	_, _ = fmt.Fprintf(output, "%s", word.Word)
	if word.Reading != "" {
		_, _ = fmt.Fprintf(output, "（%s）", word.Reading)
	}
	_, _ = fmt.Fprintln(output)
	_, _ = fmt.Fprintf(output, "意味: %s\n", orDefault(word.MeaningShort, "意味は準備中"))
	_, _ = fmt.Fprintf(output, "詳しく: %s\n", orDefault(word.MeaningLong, word.MeaningShort, "詳細は準備中"))
	_, _ = fmt.Fprintf(output, "類義語: %s\n", joinOrNone(word.Synonyms))
	_, _ = fmt.Fprintf(output, "対義語: %s\n", joinOrNone(word.Antonyms))
	_, _ = fmt.Fprintf(output, "例文: %s\n", orDefault(word.Example, "例文は準備中"))
	if word.Difficulty != nil {
		_, _ = fmt.Fprintf(output, "難易度: %d\n", *word.Difficulty)
	}
	if len(word.Tags) > 0 {
		_, _ = fmt.Fprintf(output, "タグ: %s\n", strings.Join(word.Tags, ", "))
	}
}
