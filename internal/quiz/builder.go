// Package quiz builds multiple-choice synonym and antonym questions from the word catalog.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// OptionCount is the number of options in every question.
const OptionCount = 4

// Random is the source of randomness for picking and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

func (globalRandom) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Question is one multiple-choice question. Options holds OptionCount unique
// strings and contains Correct exactly once.
type Question struct {
	Mode    Mode     `json:"mode"`
	WordID  string   `json:"wordId"`
	Correct string   `json:"correct"`
	Options []string `json:"options"`
}

// IsCorrect reports whether answer is the correct option.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.Correct
}

// Builder builds questions.
type Builder struct {
	random Random
}

type Option func(*Builder)

// WithRandom replaces the default unseeded random source.
func WithRandom(random Random) Option {
	return func(b *Builder) {
		b.random = random
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		random: globalRandom{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds a question about target, drawing distractors from the other words.
// target is identified in words by its id. Build never fails; when too few
// distinct candidates exist, other words' text and then numbered placeholders fill the options.
func (b *Builder) Build(mode Mode, target vocabulary.Word, words []vocabulary.Word) Question {
	override := mode.override(target)
	correct := b.pickCorrect(mode, target, override)

	others := lo.Filter(words, func(w vocabulary.Word, _ int) bool {
		return w.ID != target.ID
	})
	pool := lo.FlatMap(others, func(w vocabulary.Word, _ int) []string {
		return mode.candidates(w)
	})
	pool = lo.Without(lo.Uniq(pool), correct)

	options := newOptionSet(correct)
	if override != nil {
		// curated distractors take priority over the random pool
		for _, distractor := range override.Distractors {
			options.add(distractor)
		}
	}
	for _, candidate := range b.shuffle(pool) {
		if options.len() >= OptionCount {
			break
		}
		options.add(candidate)
	}

	for _, w := range others {
		if options.len() >= OptionCount {
			break
		}
		options.add(w.Word)
	}
	for n := options.len() + 1; options.len() < OptionCount; n++ {
		options.add(placeholder(n))
	}

	result := b.shuffle(options.items())
	if len(result) > OptionCount {
		rest := lo.Without(result, correct)[:OptionCount-1]
		result = b.shuffle(append([]string{correct}, rest...))
	}

	return Question{
		Mode:    mode,
		WordID:  target.ID,
		Correct: correct,
		Options: result,
	}
}

func (b *Builder) pickCorrect(mode Mode, target vocabulary.Word, override *vocabulary.QuizSet) string {
	if override != nil {
		return override.Correct
	}
	candidates := mode.candidates(target)
	return candidates[b.random.IntN(len(candidates))]
}

func (b *Builder) shuffle(items []string) []string {
	shuffled := append([]string{}, items...)
	b.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func placeholder(n int) string {
	return fmt.Sprintf("選択肢%d", n)
}

// optionSet is a set of options that remembers insertion order.
type optionSet struct {
	order []string
	seen  map[string]struct{}
}

func newOptionSet(initial string) *optionSet {
	s := &optionSet{seen: make(map[string]struct{})}
	s.add(initial)
	return s
}

func (s *optionSet) add(option string) {
	if _, ok := s.seen[option]; ok {
		return
	}
	s.seen[option] = struct{}{}
	s.order = append(s.order, option)
}

func (s *optionSet) len() int {
	return len(s.order)
}

func (s *optionSet) items() []string {
	return append([]string{}, s.order...)
}
