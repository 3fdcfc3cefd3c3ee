package server

import (
	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/quiz"
	"github.com/at-ishikawa/spivocab/internal/statistics"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

type ListWordsRequest struct {
	// Tag keeps only words carrying the tag when set
	Tag string `json:"tag,omitempty"`
}

type ListWordsResponse struct {
	Words []vocabulary.Word `json:"words"`
}

type GetWordRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetWordResponse struct {
	Word vocabulary.Word `json:"word"`
}

type BuildQuestionRequest struct {
	WordID string `json:"wordId" validate:"required"`
	Mode   string `json:"mode" validate:"required,oneof=synonym antonym"`
}

type BuildQuestionResponse struct {
	Question quiz.Question `json:"question"`
}

type RecordAttemptRequest struct {
	WordID     string `json:"wordId" validate:"required"`
	SelfRating *int   `json:"selfRating" validate:"required,oneof=0 1 2"`
}

type RecordAttemptResponse struct {
	Attempt attempt.Attempt `json:"attempt"`
}

type GetProgressRequest struct{}

type GetProgressResponse struct {
	Progress statistics.Progress `json:"progress"`
}
