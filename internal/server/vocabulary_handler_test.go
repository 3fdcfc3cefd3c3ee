package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/proto"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	mock_attempt "github.com/at-ishikawa/spivocab/internal/mocks/attempt"
	"github.com/at-ishikawa/spivocab/internal/quiz"
	"github.com/at-ishikawa/spivocab/internal/testutil"
	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

var fixedNow = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

func newTestClient(t *testing.T, catalog *vocabulary.Catalog, attempts AttemptLog) *VocabularyServiceClient {
	t.Helper()

	handler, err := NewVocabularyHandler(catalog, attempts, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	server := httptest.NewServer(NewHTTPHandler(handler, []string{"http://localhost:3000"}))
	t.Cleanup(server.Close)
	return NewVocabularyServiceClient(http.DefaultClient, server.URL)
}

func intPtr(v int) *int {
	return &v
}

func TestVocabularyHandler_ListWords(t *testing.T) {
	client := newTestClient(t, vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(attempt.NewMemorySlot()))

	tests := []struct {
		name    string
		req     *ListWordsRequest
		wantIDs []string
	}{
		{
			name:    "all words in catalog order",
			req:     &ListWordsRequest{},
			wantIDs: []string{"w1", "w2", "w3"},
		},
		{
			name:    "filtered by tag",
			req:     &ListWordsRequest{Tag: "性格"},
			wantIDs: []string{"w1"},
		},
		{
			name:    "unknown tag",
			req:     &ListWordsRequest{Tag: "none"},
			wantIDs: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.ListWords.CallUnary(context.Background(), connect.NewRequest(tt.req))
			require.NoError(t, err)

			gotIDs := []string{}
			for _, w := range resp.Msg.Words {
				gotIDs = append(gotIDs, w.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestVocabularyHandler_GetWord(t *testing.T) {
	client := newTestClient(t, vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(attempt.NewMemorySlot()))

	tests := []struct {
		name     string
		id       string
		want     vocabulary.Word
		wantCode connect.Code
	}{
		{
			name: "found",
			id:   "w1",
			want: testutil.CatalogFixtureWords()[0],
		},
		{
			name:     "unknown id",
			id:       "w9",
			wantCode: connect.CodeNotFound,
		},
		{
			name:     "missing id",
			wantCode: connect.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.GetWord.CallUnary(context.Background(), connect.NewRequest(&GetWordRequest{ID: tt.id}))
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Msg.Word)
		})
	}
}

func TestVocabularyHandler_BuildQuestion(t *testing.T) {
	tests := []struct {
		name        string
		catalog     *vocabulary.Catalog
		req         *BuildQuestionRequest
		wantCorrect string
		wantCode    connect.Code
	}{
		{
			name:        "antonym override",
			catalog:     vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()),
			req:         &BuildQuestionRequest{WordID: "w2", Mode: "antonym"},
			wantCorrect: "簡潔",
		},
		{
			name:        "synonym",
			catalog:     vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()),
			req:         &BuildQuestionRequest{WordID: "w3", Mode: "synonym"},
			wantCorrect: "精密",
		},
		{
			name:     "unknown word",
			catalog:  vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()),
			req:      &BuildQuestionRequest{WordID: "w9", Mode: "synonym"},
			wantCode: connect.CodeNotFound,
		},
		{
			name:     "unknown mode",
			catalog:  vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()),
			req:      &BuildQuestionRequest{WordID: "w1", Mode: "meaning"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "empty catalog",
			catalog:  vocabulary.NewCatalog(nil),
			req:      &BuildQuestionRequest{WordID: "w1", Mode: "synonym"},
			wantCode: connect.CodeFailedPrecondition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.catalog, attempt.NewStore(attempt.NewMemorySlot()))

			resp, err := client.BuildQuestion.CallUnary(context.Background(), connect.NewRequest(tt.req))
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				return
			}
			require.NoError(t, err)

			question := resp.Msg.Question
			assert.Equal(t, quiz.Mode(tt.req.Mode), question.Mode)
			assert.Equal(t, tt.req.WordID, question.WordID)
			assert.Equal(t, tt.wantCorrect, question.Correct)
			assert.Len(t, question.Options, quiz.OptionCount)
			assert.Contains(t, question.Options, tt.wantCorrect)
		})
	}
}

func TestVocabularyHandler_RecordAttempt(t *testing.T) {
	t.Run("appends and aggregates", func(t *testing.T) {
		slot := attempt.NewMemorySlot()
		client := newTestClient(t, vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(slot))

		resp, err := client.RecordAttempt.CallUnary(context.Background(), connect.NewRequest(&RecordAttemptRequest{
			WordID:     "w1",
			SelfRating: intPtr(0),
		}))
		require.NoError(t, err)
		assert.Equal(t, attempt.Attempt{
			WordID:     "w1",
			Mode:       attempt.ModeMemorize,
			SelfRating: attempt.RatingForgotten,
			AnsweredAt: "2026-04-01T09:30:00.000Z",
		}, resp.Msg.Attempt)

		value, ok, err := slot.Get(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"wordId":"w1","mode":"memorize","selfRating":0,"answeredAt":"2026-04-01T09:30:00.000Z"}]`, value)

		progress, err := client.GetProgress.CallUnary(context.Background(), connect.NewRequest(&GetProgressRequest{}))
		require.NoError(t, err)
		assert.Equal(t, 1, progress.Msg.Progress.Total)
		assert.Equal(t, 1, progress.Msg.Progress.TodayCount)
		assert.Equal(t, 0, progress.Msg.Progress.StrongRate)
		require.Len(t, progress.Msg.Progress.WeakWords, 1)
		assert.Equal(t, "寡黙", progress.Msg.Progress.WeakWords[0].Word)
	})

	t.Run("invalid requests", func(t *testing.T) {
		client := newTestClient(t, vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(attempt.NewMemorySlot()))

		tests := []struct {
			name           string
			req            *RecordAttemptRequest
			wantCode       connect.Code
			wantViolations []*errdetails.BadRequest_FieldViolation
		}{
			{
				name:     "missing rating",
				req:      &RecordAttemptRequest{WordID: "w1"},
				wantCode: connect.CodeInvalidArgument,
				wantViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: "selfRating", Description: "selfRating is a required field"},
				},
			},
			{
				name:     "rating out of range",
				req:      &RecordAttemptRequest{WordID: "w1", SelfRating: intPtr(3)},
				wantCode: connect.CodeInvalidArgument,
				wantViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: "selfRating", Description: "selfRating must be one of [0 1 2]"},
				},
			},
			{
				name:     "unknown word",
				req:      &RecordAttemptRequest{WordID: "w9", SelfRating: intPtr(1)},
				wantCode: connect.CodeNotFound,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := client.RecordAttempt.CallUnary(context.Background(), connect.NewRequest(tt.req))
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				if tt.wantViolations == nil {
					return
				}

				var connectErr *connect.Error
				require.True(t, errors.As(err, &connectErr))
				require.Len(t, connectErr.Details(), 1)
				value, err := connectErr.Details()[0].Value()
				require.NoError(t, err)
				assert.True(t, proto.Equal(&errdetails.BadRequest{FieldViolations: tt.wantViolations}, value), value)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slot := mock_attempt.NewMockSlot(ctrl)
		slot.EXPECT().Get(gomock.Any()).Return("", false, errors.New("disk full")).AnyTimes()

		client := newTestClient(t, vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(slot))

		_, err := client.RecordAttempt.CallUnary(context.Background(), connect.NewRequest(&RecordAttemptRequest{
			WordID:     "w1",
			SelfRating: intPtr(2),
		}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))

		_, err = client.GetProgress.CallUnary(context.Background(), connect.NewRequest(&GetProgressRequest{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	})
}

func TestNewHTTPHandler_CORS(t *testing.T) {
	handler, err := NewVocabularyHandler(vocabulary.NewCatalogFromRaw(testutil.CatalogFixture()), attempt.NewStore(attempt.NewMemorySlot()))
	require.NoError(t, err)
	server := httptest.NewServer(NewHTTPHandler(handler, []string{"http://localhost:3000"}))
	defer server.Close()

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{
			name:       "allowed origin",
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		{
			name:   "other origin",
			origin: "http://example.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, server.URL+ListWordsProcedure, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "content-type")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}
