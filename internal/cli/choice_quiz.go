package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/at-ishikawa/spivocab/internal/quiz"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// ChoiceQuizCLI asks a 4-choice synonym or antonym question per word in catalog order.
// Answers are not recorded in the attempt log.
type ChoiceQuizCLI struct {
	*InteractiveQuizCLI
	mode     quiz.Mode
	builder  *quiz.Builder
	index    int
	question *quiz.Question

	answered int
	correct  int
}

func NewChoiceQuizCLI(catalog *vocabulary.Catalog, mode quiz.Mode, builder *quiz.Builder, start int) (*ChoiceQuizCLI, error) {
	base, index, err := newInteractiveQuizCLI(catalog, start)
	if err != nil {
		return nil, err
	}
	return &ChoiceQuizCLI{
		InteractiveQuizCLI: base,
		mode:               mode,
		builder:            builder,
		index:              index,
	}, nil
}

func (r *ChoiceQuizCLI) move(delta int) {
	r.index = r.clamp(r.index + delta)
	r.question = nil
}

func (r *ChoiceQuizCLI) currentQuestion() quiz.Question {
	if r.question == nil {
		q := r.builder.Build(r.mode, r.words[r.index], r.words)
		r.question = &q
	}
	return *r.question
}

func (r *ChoiceQuizCLI) Session(ctx context.Context) error {
	word := r.words[r.index]
	question := r.currentQuestion()

	out := r.stdoutWriter
	_, _ = fmt.Fprintf(out, "\n[%s] %s\n%s\n", r.progress(r.index), r.mode.Label(), r.mode.Prompt())
	_, _ = r.bold.Fprintln(out, word.Word)
	for i, option := range question.Options {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, option)
	}
	_, _ = fmt.Fprint(out, "番号を入力 (n: 次へ, p: 前へ, q: 終了) > ")

	input, err := r.readInput()
	if err != nil {
		if errors.Is(err, errEnd) {
			r.printScore()
		}
		return err
	}

	switch input {
	case "q", "quit":
		r.printScore()
		return errEnd
	case "n":
		r.move(1)
		return nil
	case "p":
		r.move(-1)
		return nil
	}

	number, err := strconv.Atoi(input)
	if err != nil || number < 1 || number > len(question.Options) {
		_, _ = fmt.Fprintf(out, "1〜%d の番号を入力してください。\n", len(question.Options))
		return nil
	}

	r.answered++
	if question.IsCorrect(question.Options[number-1]) {
		r.correct++
		_, _ = r.green.Fprintln(out, "✅ 正解！")
	} else {
		_, _ = r.red.Fprintln(out, "❌ 不正解")
	}
	_, _ = fmt.Fprintf(out, "  正解: %s\n", question.Correct)
	_, _ = fmt.Fprintf(out, "  意味: %s\n", orDefault(word.DisplayMeaning(), "意味は準備中"))

	if r.index == len(r.words)-1 {
		r.printScore()
		return errEnd
	}
	r.move(1)
	return nil
}

func (r *ChoiceQuizCLI) printScore() {
	if r.answered == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "\n結果: %d / %d 問正解\n", r.correct, r.answered)
}
