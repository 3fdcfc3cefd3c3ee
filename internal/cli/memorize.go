package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// AttemptRecorder appends self ratings to the attempt log
type AttemptRecorder interface {
	Append(ctx context.Context, a attempt.Attempt) error
}

// MemorizeCLI is a flashcard session that records a self rating per card
type MemorizeCLI struct {
	*InteractiveQuizCLI
	recorder   AttemptRecorder
	now        func() time.Time
	index      int
	showAnswer bool
}

func NewMemorizeCLI(catalog *vocabulary.Catalog, recorder AttemptRecorder, start int) (*MemorizeCLI, error) {
	base, index, err := newInteractiveQuizCLI(catalog, start)
	if err != nil {
		return nil, err
	}
	return &MemorizeCLI{
		InteractiveQuizCLI: base,
		recorder:           recorder,
		now:                time.Now,
		index:              index,
	}, nil
}

func (r *MemorizeCLI) move(delta int) {
	r.index = r.clamp(r.index + delta)
	r.showAnswer = false
}

func (r *MemorizeCLI) Session(ctx context.Context) error {
	word := r.words[r.index]
	r.printCard(word)
	_, _ = fmt.Fprint(r.stdoutWriter, "Enter: 答えを見る/隠す, 2: 覚えてる, 1: あいまい, 0: 覚えてない, n: 次へ, p: 前へ, q: 終了 > ")

	input, err := r.readInput()
	if err != nil {
		return err
	}

	switch input {
	case "q", "quit":
		return errEnd
	case "n":
		r.move(1)
		return nil
	case "p":
		r.move(-1)
		return nil
	case "", "a":
		r.showAnswer = !r.showAnswer
		return nil
	}

	rating, err := attempt.ParseSelfRating(input)
	if err != nil {
		_, _ = fmt.Fprintf(r.stdoutWriter, "%q は使えません。2, 1, 0 のいずれかで評価してください。\n", input)
		return nil
	}
	if !r.showAnswer {
		_, _ = fmt.Fprintln(r.stdoutWriter, "答えを見てから評価してください。")
		return nil
	}

	if err := r.recorder.Append(ctx, attempt.NewMemorizeAttempt(word.ID, rating, r.now())); err != nil {
		return fmt.Errorf("recorder.Append > %w", err)
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "「%s」で記録しました。\n", rating.Label())

	if r.index == len(r.words)-1 {
		_, _ = fmt.Fprintln(r.stdoutWriter, "すべての単語を学習しました！")
		return errEnd
	}
	r.move(1)
	return nil
}

func (r *MemorizeCLI) printCard(word vocabulary.Word) {
	out := r.stdoutWriter
	_, _ = fmt.Fprintf(out, "\n[%s] ", r.progress(r.index))
	_, _ = r.bold.Fprint(out, word.Word)
	if word.Reading != "" {
		_, _ = fmt.Fprintf(out, "（%s）", word.Reading)
	}
	_, _ = fmt.Fprintln(out)

	if !r.showAnswer {
		return
	}
	_, _ = fmt.Fprintf(out, "  意味: %s\n", orDefault(word.MeaningShort, "意味は準備中"))
	_, _ = fmt.Fprintf(out, "  詳しく: %s\n", orDefault(word.MeaningLong, word.MeaningShort, "詳細は準備中"))
	_, _ = fmt.Fprintf(out, "  類義語: %s\n", joinOrNone(word.Synonyms))
	_, _ = fmt.Fprintf(out, "  対義語: %s\n", joinOrNone(word.Antonyms))
	_, _ = fmt.Fprintf(out, "  例文: %s\n", r.italic.Sprint(orDefault(word.Example, "例文は準備中")))
}
