package quiz

import (
	"fmt"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// Mode selects which relation a question asks about.
type Mode string

const (
	ModeSynonym Mode = "synonym"
	ModeAntonym Mode = "antonym"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSynonym, ModeAntonym:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid quiz mode %q, valid values are %q or %q", s, ModeSynonym, ModeAntonym)
}

// Label is the heading shown to the learner.
func (m Mode) Label() string {
	if m == ModeAntonym {
		return "対義語4択"
	}
	return "類義語4択"
}

// Prompt is the instruction shown under a question.
func (m Mode) Prompt() string {
	if m == ModeAntonym {
		return "次の語の対義語として最も近いものを選んでください。"
	}
	return "次の語の類義語として最も近いものを選んでください。"
}

func (m Mode) related(w vocabulary.Word) []string {
	if m == ModeAntonym {
		return w.Antonyms
	}
	return w.Synonyms
}

func (m Mode) override(w vocabulary.Word) *vocabulary.QuizSet {
	if m == ModeAntonym {
		return w.QuizAntonyms
	}
	return w.QuizSynonyms
}

// candidates returns the related words, or the word itself when it has none.
func (m Mode) candidates(w vocabulary.Word) []string {
	if related := m.related(w); len(related) > 0 {
		return related
	}
	return []string{w.Word}
}
