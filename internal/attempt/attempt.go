// Package attempt provides the append-only log of self-rating attempts.
package attempt

import (
	"fmt"
	"strconv"
	"time"
)

// Mode tags the activity an attempt was recorded in.
type Mode string

// ModeMemorize is the only mode currently recorded. Attempts with any other
// mode are dropped on read.
const ModeMemorize Mode = "memorize"

// SelfRating is the learner's three-level self assessment.
type SelfRating int

const (
	RatingForgotten  SelfRating = 0
	RatingVague      SelfRating = 1
	RatingRemembered SelfRating = 2
)

// Ratings lists the levels from best to worst, in display order.
var Ratings = []SelfRating{RatingRemembered, RatingVague, RatingForgotten}

func (r SelfRating) Valid() bool {
	return r == RatingForgotten || r == RatingVague || r == RatingRemembered
}

// IsLow reports whether the rating counts against a word.
func (r SelfRating) IsLow() bool {
	return r <= RatingVague
}

func (r SelfRating) Label() string {
	switch r {
	case RatingRemembered:
		return "覚えてる"
	case RatingVague:
		return "あいまい"
	case RatingForgotten:
		return "覚えてない"
	}
	return strconv.Itoa(int(r))
}

func (r SelfRating) String() string {
	switch r {
	case RatingRemembered:
		return "remembered"
	case RatingVague:
		return "vague"
	case RatingForgotten:
		return "forgotten"
	}
	return strconv.Itoa(int(r))
}

// ParseSelfRating accepts a level number or its English name.
func ParseSelfRating(s string) (SelfRating, error) {
	for _, r := range Ratings {
		if s == strconv.Itoa(int(r)) || s == r.String() {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid self rating %q, valid values are 2 (remembered), 1 (vague) or 0 (forgotten)", s)
}

// TimestampLayout is the layout of AnsweredAt for attempts recorded here,
// an ISO-8601 UTC timestamp with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Attempt is one self-rating event. It is immutable once recorded.
type Attempt struct {
	WordID     string     `json:"wordId" yaml:"word_id"`
	Mode       Mode       `json:"mode" yaml:"mode"`
	SelfRating SelfRating `json:"selfRating" yaml:"self_rating"`
	AnsweredAt string     `json:"answeredAt" yaml:"answered_at"`
}

// NewMemorizeAttempt records a rating given in memorize mode at now.
func NewMemorizeAttempt(wordID string, rating SelfRating, now time.Time) Attempt {
	return Attempt{
		WordID:     wordID,
		Mode:       ModeMemorize,
		SelfRating: rating,
		AnsweredAt: now.UTC().Format(TimestampLayout),
	}
}

// Valid reports whether the attempt would survive a read of the log.
func (a Attempt) Valid() bool {
	return a.Mode == ModeMemorize && a.SelfRating.Valid()
}
