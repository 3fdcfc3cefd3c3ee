// Package server provides Connect RPC handlers for the vocabulary service.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/quiz"
	"github.com/at-ishikawa/spivocab/internal/statistics"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// AttemptLog is the attempt store used by the handler.
type AttemptLog interface {
	All(ctx context.Context) ([]attempt.Attempt, error)
	Append(ctx context.Context, a attempt.Attempt) error
}

// VocabularyHandler serves the word catalog, questions and the attempt log.
type VocabularyHandler struct {
	catalog    *vocabulary.Catalog
	attempts   AttemptLog
	builder    *quiz.Builder
	aggregator *statistics.Aggregator
	validator  *requestValidator
	now        func() time.Time
}

type HandlerOption func(*VocabularyHandler)

// WithClock replaces time.Now for recorded attempts and progress.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *VocabularyHandler) {
		h.now = now
	}
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(catalog *vocabulary.Catalog, attempts AttemptLog, opts ...HandlerOption) (*VocabularyHandler, error) {
	validator, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}

	h := &VocabularyHandler{
		catalog:   catalog,
		attempts:  attempts,
		builder:   quiz.NewBuilder(),
		validator: validator,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.aggregator = statistics.NewAggregator(attempts, catalog, statistics.WithClock(h.now))
	return h, nil
}

// ListWords returns the catalog in order.
func (h *VocabularyHandler) ListWords(
	ctx context.Context,
	req *connect.Request[ListWordsRequest],
) (*connect.Response[ListWordsResponse], error) {
	words := h.catalog.Words()
	if tag := req.Msg.Tag; tag != "" {
		words = lo.Filter(words, func(w vocabulary.Word, _ int) bool {
			return lo.Contains(w.Tags, tag)
		})
	}
	return connect.NewResponse(&ListWordsResponse{Words: words}), nil
}

// GetWord returns one word by id.
func (h *VocabularyHandler) GetWord(
	ctx context.Context,
	req *connect.Request[GetWordRequest],
) (*connect.Response[GetWordResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	word, err := h.findWord(req.Msg.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetWordResponse{Word: word}), nil
}

// BuildQuestion builds a fresh 4-choice question for a word.
func (h *VocabularyHandler) BuildQuestion(
	ctx context.Context,
	req *connect.Request[BuildQuestionRequest],
) (*connect.Response[BuildQuestionResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if h.catalog.IsEmpty() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("the word catalog is empty"))
	}

	mode, err := quiz.ParseMode(req.Msg.Mode)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	word, err := h.findWord(req.Msg.WordID)
	if err != nil {
		return nil, err
	}

	question := h.builder.Build(mode, word, h.catalog.Words())
	return connect.NewResponse(&BuildQuestionResponse{Question: question}), nil
}

// RecordAttempt appends a memorize self rating to the attempt log.
func (h *VocabularyHandler) RecordAttempt(
	ctx context.Context,
	req *connect.Request[RecordAttemptRequest],
) (*connect.Response[RecordAttemptResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := h.findWord(req.Msg.WordID); err != nil {
		return nil, err
	}

	a := attempt.NewMemorizeAttempt(req.Msg.WordID, attempt.SelfRating(*req.Msg.SelfRating), h.now())
	if err := h.attempts.Append(ctx, a); err != nil {
		if errors.Is(err, attempt.ErrInvalidAttempt) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("append attempt: %w", err))
	}
	return connect.NewResponse(&RecordAttemptResponse{Attempt: a}), nil
}

// GetProgress aggregates the attempt log.
func (h *VocabularyHandler) GetProgress(
	ctx context.Context,
	req *connect.Request[GetProgressRequest],
) (*connect.Response[GetProgressResponse], error) {
	progress, err := h.aggregator.Progress(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("aggregate progress: %w", err))
	}
	return connect.NewResponse(&GetProgressResponse{Progress: progress}), nil
}

func (h *VocabularyHandler) findWord(id string) (vocabulary.Word, error) {
	word, ok := h.catalog.FindByID(id)
	if !ok {
		return vocabulary.Word{}, connect.NewError(connect.CodeNotFound, fmt.Errorf("word %q not found", id))
	}
	return word, nil
}
