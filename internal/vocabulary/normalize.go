package vocabulary

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Normalize converts raw records into words, keeping length and order.
// It never fails: every malformed field degrades to a safe default.
func Normalize(raws []RawWord) []Word {
	return lo.Map(raws, func(raw RawWord, _ int) Word {
		return NormalizeWord(raw)
	})
}

// NormalizeWord converts one raw record into a word.
func NormalizeWord(raw RawWord) Word {
	meaningShort := toText(raw["meaning_short"])
	meaningLong := toText(raw["meaning_long"])
	if meaningLong == "" {
		meaningLong = meaningShort
	}

	return Word{
		ID:           toText(raw["id"]),
		Word:         toText(raw["word"]),
		Reading:      toText(raw["reading"]),
		MeaningShort: meaningShort,
		MeaningLong:  meaningLong,
		Synonyms:     toStringSlice(raw["synonyms"]),
		Antonyms:     toStringSlice(raw["antonyms"]),
		Example:      toText(raw["example"]),
		Difficulty:   toDifficulty(raw["difficulty"]),
		Tags:         toStringSlice(raw["tags"]),
		QuizSynonyms: toQuizSet(raw["quiz_synonyms"]),
		QuizAntonyms: toQuizSet(raw["quiz_antonyms"]),
	}
}

// toText keeps strings, coerces other scalars and maps everything else to "".
func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any, map[string]any:
		return ""
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return s
}

// toStringSlice keeps the string elements of an array, in order. The result is never nil.
func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		return lo.FilterMap(v, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		})
	}
	return []string{}
}

func toDifficulty(value any) *int {
	switch value.(type) {
	case int, int64, float64, string:
	default:
		return nil
	}
	difficulty, err := cast.ToIntE(value)
	if err != nil {
		return nil
	}
	return &difficulty
}

func toQuizSet(value any) *QuizSet {
	var fields map[string]any
	switch v := value.(type) {
	case map[string]any:
		fields = v
	case RawWord:
		fields = v
	case *QuizSet:
		if v == nil {
			return nil
		}
		fields = v.raw()
	case QuizSet:
		fields = v.raw()
	default:
		return nil
	}

	correct, ok := fields["correct"].(string)
	if !ok || strings.TrimSpace(correct) == "" {
		return nil
	}
	return &QuizSet{
		Correct:     correct,
		Distractors: toStringSlice(fields["distractors"]),
	}
}
