// Package vocabulary provides the word catalog: its record types, the normalizer
// that coerces loosely typed source records, and catalog loaders.
package vocabulary

// RawWord is a loosely typed catalog record as decoded from JSON or YAML.
type RawWord map[string]any

// QuizSet is a curated quiz override for one word.
type QuizSet struct {
	Correct     string   `json:"correct" yaml:"correct"`
	Distractors []string `json:"distractors" yaml:"distractors"`
}

// Word is a normalized vocabulary entry.
type Word struct {
	ID           string   `json:"id" yaml:"id"`
	Word         string   `json:"word" yaml:"word"`
	Reading      string   `json:"reading" yaml:"reading"`
	MeaningShort string   `json:"meaning_short" yaml:"meaning_short"`
	MeaningLong  string   `json:"meaning_long" yaml:"meaning_long"`
	Synonyms     []string `json:"synonyms" yaml:"synonyms"`
	Antonyms     []string `json:"antonyms" yaml:"antonyms"`
	Example      string   `json:"example" yaml:"example"`
	Difficulty   *int     `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Tags         []string `json:"tags" yaml:"tags"`
	QuizSynonyms *QuizSet `json:"quiz_synonyms,omitempty" yaml:"quiz_synonyms,omitempty"`
	QuizAntonyms *QuizSet `json:"quiz_antonyms,omitempty" yaml:"quiz_antonyms,omitempty"`
}

// Raw converts the word back into its loosely typed form.
// NormalizeWord(w.Raw()) yields w again.
func (w Word) Raw() RawWord {
	raw := RawWord{
		"id":            w.ID,
		"word":          w.Word,
		"reading":       w.Reading,
		"meaning_short": w.MeaningShort,
		"meaning_long":  w.MeaningLong,
		"synonyms":      toAnySlice(w.Synonyms),
		"antonyms":      toAnySlice(w.Antonyms),
		"example":       w.Example,
		"tags":          toAnySlice(w.Tags),
	}
	if w.Difficulty != nil {
		raw["difficulty"] = *w.Difficulty
	}
	if w.QuizSynonyms != nil {
		raw["quiz_synonyms"] = w.QuizSynonyms.raw()
	}
	if w.QuizAntonyms != nil {
		raw["quiz_antonyms"] = w.QuizAntonyms.raw()
	}
	return raw
}

// DisplayMeaning returns the short meaning, falling back to the long one.
func (w Word) DisplayMeaning() string {
	if w.MeaningShort != "" {
		return w.MeaningShort
	}
	return w.MeaningLong
}

func (q QuizSet) raw() map[string]any {
	return map[string]any{
		"correct":     q.Correct,
		"distractors": toAnySlice(q.Distractors),
	}
}

func toAnySlice(values []string) []any {
	result := make([]any, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}
