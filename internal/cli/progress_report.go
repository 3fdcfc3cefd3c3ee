package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/statistics"
)

// WriteProgressReport prints a progress snapshot in the layout of the progress page
func WriteProgressReport(output io.Writer, progress statistics.Progress) error {
	bold := color.New(color.Bold)
	heading := color.New(color.FgCyan, color.Bold)

	_, _ = heading.Fprintln(output, "学習記録")
	_, _ = fmt.Fprintf(output, "今日の学習回数: %s\n", bold.Sprint(progress.TodayCount))
	_, _ = fmt.Fprintf(output, "覚えてる率: %s (総記録数: %d)\n", bold.Sprintf("%d%%", progress.StrongRate), progress.Total)
	latest := "記録なし"
	if progress.Latest != nil {
		latest = progress.Latest.Format(time.DateTime)
	}
	_, _ = fmt.Fprintf(output, "最終学習日時: %s\n", latest)

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	for _, rating := range attempt.Ratings {
		_, _ = fmt.Fprintf(w, "%s\t", rating.Label())
	}
	_, _ = fmt.Fprintln(w)
	for _, rating := range attempt.Ratings {
		_, _ = fmt.Fprintf(w, "%d\t", progress.RatingCounts[rating])
	}
	_, _ = fmt.Fprintln(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("w.Flush() > %w", err)
	}

	_, _ = fmt.Fprintln(output)
	_, _ = heading.Fprintln(output, "苦手になりやすい単語")
	if len(progress.WeakWords) == 0 {
		_, _ = fmt.Fprintln(output, "まだ記録がありません。暗記モードで記録を増やしましょう。")
	} else {
		w = tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
		for _, word := range progress.WeakWords {
			_, _ = fmt.Fprintf(w, "  %s\t低評価 %d / 記録 %d\n", word.Word, word.Low, word.Total)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("w.Flush() > %w", err)
		}
	}

	_, _ = fmt.Fprintln(output)
	_, _ = heading.Fprintln(output, "最近の記録")
	if len(progress.RecentAttempts) == 0 {
		_, _ = fmt.Fprintln(output, "記録がありません。")
		return nil
	}
	w = tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	for _, recent := range progress.RecentAttempts {
		_, _ = fmt.Fprintf(w, "  %s\t%s / %s\n", recent.Word, recent.SelfRating.Label(), recent.AnsweredAt)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("w.Flush() > %w", err)
	}
	return nil
}
