// Package statistics derives progress reports from the attempt log.
package statistics

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

const (
	weakWordsLimit      = 5
	recentAttemptsLimit = 5
)

// Progress is a snapshot of the attempt log, recomputed on every call
type Progress struct {
	Total          int                        `json:"total"`
	RatingCounts   map[attempt.SelfRating]int `json:"ratingCounts"`
	TodayCount     int                        `json:"todayCount"`
	StrongRate     int                        `json:"strongRate"` // percentage of attempts rated remembered
	Latest         *time.Time                 `json:"latest,omitempty"`
	WeakWords      []WeakWord                 `json:"weakWords"`
	RecentAttempts []RecentAttempt            `json:"recentAttempts"`
}

// WeakWord is a word with at least one low rating
type WeakWord struct {
	WordID string `json:"wordId"`
	Word   string `json:"word"`
	Low    int    `json:"low"`
	Total  int    `json:"total"`
}

// RecentAttempt is an attempt annotated with the display text of its word
type RecentAttempt struct {
	attempt.Attempt
	Word string `json:"word"`
}

type wordTally struct {
	wordID string
	low    int
	total  int
}

type datedAttempt struct {
	attempt attempt.Attempt
	at      time.Time
	valid   bool
}

// CalculateProgress aggregates the whole log against the catalog.
// Timestamps are parsed best effort in now's location; an unparseable
// timestamp is never today, never the latest, and sorts after every parseable one.
func CalculateProgress(attempts []attempt.Attempt, catalog *vocabulary.Catalog, now time.Time) Progress {
	progress := Progress{
		Total: len(attempts),
		RatingCounts: map[attempt.SelfRating]int{
			attempt.RatingRemembered: 0,
			attempt.RatingVague:      0,
			attempt.RatingForgotten:  0,
		},
		WeakWords:      []WeakWord{},
		RecentAttempts: []RecentAttempt{},
	}

	loc := now.Location()
	todayYear, todayMonth, todayDay := now.Date()

	// tallies keeps the first appearance order of each word
	var tallies []*wordTally
	tallyByID := make(map[string]*wordTally)
	dated := make([]datedAttempt, 0, len(attempts))

	for _, a := range attempts {
		progress.RatingCounts[a.SelfRating]++

		at, ok := parseTimestamp(a.AnsweredAt, loc)
		dated = append(dated, datedAttempt{attempt: a, at: at, valid: ok})
		if ok {
			y, m, d := at.Date()
			if y == todayYear && m == todayMonth && d == todayDay {
				progress.TodayCount++
			}
			if progress.Latest == nil || at.After(*progress.Latest) {
				latest := at
				progress.Latest = &latest
			}
		}

		tally, ok := tallyByID[a.WordID]
		if !ok {
			tally = &wordTally{wordID: a.WordID}
			tallyByID[a.WordID] = tally
			tallies = append(tallies, tally)
		}
		tally.total++
		if a.SelfRating.IsLow() {
			tally.low++
		}
	}

	progress.StrongRate = percentage(progress.RatingCounts[attempt.RatingRemembered], progress.Total)
	progress.WeakWords = weakWords(tallies, catalog)
	progress.RecentAttempts = recentAttempts(dated, catalog)
	return progress
}

// parseTimestamp reads RFC 3339 first so an explicit offset always wins;
// dateparse only covers other formats, which are read in loc.
func parseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), true
	}
	t, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(loc), true
}

// percentage rounds half up and is 0 for an empty total
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return (count*200 + total) / (total * 2)
}

func weakWords(tallies []*wordTally, catalog *vocabulary.Catalog) []WeakWord {
	weak := make([]WeakWord, 0, len(tallies))
	for _, tally := range tallies {
		if tally.low == 0 {
			continue
		}
		weak = append(weak, WeakWord{
			WordID: tally.wordID,
			Word:   title(catalog, tally.wordID),
			Low:    tally.low,
			Total:  tally.total,
		})
	}

	sort.SliceStable(weak, func(i, j int) bool {
		if weak[i].Low != weak[j].Low {
			return weak[i].Low > weak[j].Low
		}
		return weak[i].Total > weak[j].Total
	})
	if len(weak) > weakWordsLimit {
		weak = weak[:weakWordsLimit]
	}
	return weak
}

func recentAttempts(dated []datedAttempt, catalog *vocabulary.Catalog) []RecentAttempt {
	sorted := make([]datedAttempt, len(dated))
	copy(sorted, dated)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].valid != sorted[j].valid {
			return sorted[i].valid
		}
		return sorted[i].at.After(sorted[j].at)
	})
	if len(sorted) > recentAttemptsLimit {
		sorted = sorted[:recentAttemptsLimit]
	}

	recent := make([]RecentAttempt, 0, len(sorted))
	for _, d := range sorted {
		recent = append(recent, RecentAttempt{
			Attempt: d.attempt,
			Word:    title(catalog, d.attempt.WordID),
		})
	}
	return recent
}

func title(catalog *vocabulary.Catalog, wordID string) string {
	if catalog == nil {
		return wordID
	}
	return catalog.Title(wordID)
}
