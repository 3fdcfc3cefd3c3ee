package server

import (
	"net/http"

	"connectrpc.com/connect"
	connectcors "connectrpc.com/cors"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	// VocabularyServiceName is the fully-qualified name of the vocabulary service.
	VocabularyServiceName = "spivocab.v1.VocabularyService"

	ListWordsProcedure     = "/" + VocabularyServiceName + "/ListWords"
	GetWordProcedure       = "/" + VocabularyServiceName + "/GetWord"
	BuildQuestionProcedure = "/" + VocabularyServiceName + "/BuildQuestion"
	RecordAttemptProcedure = "/" + VocabularyServiceName + "/RecordAttempt"
	GetProgressProcedure   = "/" + VocabularyServiceName + "/GetProgress"
)

// NewVocabularyServiceHandler builds an HTTP handler serving every procedure
// of the service. It returns the path on which to mount the handler.
func NewVocabularyServiceHandler(h *VocabularyHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListWordsProcedure, connect.NewUnaryHandler(ListWordsProcedure, h.ListWords, opts...))
	mux.Handle(GetWordProcedure, connect.NewUnaryHandler(GetWordProcedure, h.GetWord, opts...))
	mux.Handle(BuildQuestionProcedure, connect.NewUnaryHandler(BuildQuestionProcedure, h.BuildQuestion, opts...))
	mux.Handle(RecordAttemptProcedure, connect.NewUnaryHandler(RecordAttemptProcedure, h.RecordAttempt, opts...))
	mux.Handle(GetProgressProcedure, connect.NewUnaryHandler(GetProgressProcedure, h.GetProgress, opts...))
	return "/" + VocabularyServiceName + "/", mux
}

// NewHTTPHandler mounts the service with request logging, CORS and h2c.
func NewHTTPHandler(h *VocabularyHandler, allowedOrigins []string) http.Handler {
	path, handler := NewVocabularyServiceHandler(h, connect.WithInterceptors(NewLoggingInterceptor()))

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: connectcors.AllowedMethods(),
		AllowedHeaders: connectcors.AllowedHeaders(),
		ExposedHeaders: connectcors.ExposedHeaders(),
		MaxAge:         7200,
	})
	return corsHandler.Handler(h2c.NewHandler(mux, &http2.Server{}))
}

// VocabularyServiceClient calls the service with the JSON codec.
type VocabularyServiceClient struct {
	ListWords     *connect.Client[ListWordsRequest, ListWordsResponse]
	GetWord       *connect.Client[GetWordRequest, GetWordResponse]
	BuildQuestion *connect.Client[BuildQuestionRequest, BuildQuestionResponse]
	RecordAttempt *connect.Client[RecordAttemptRequest, RecordAttemptResponse]
	GetProgress   *connect.Client[GetProgressRequest, GetProgressResponse]
}

func NewVocabularyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *VocabularyServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &VocabularyServiceClient{
		ListWords:     connect.NewClient[ListWordsRequest, ListWordsResponse](httpClient, baseURL+ListWordsProcedure, opts...),
		GetWord:       connect.NewClient[GetWordRequest, GetWordResponse](httpClient, baseURL+GetWordProcedure, opts...),
		BuildQuestion: connect.NewClient[BuildQuestionRequest, BuildQuestionResponse](httpClient, baseURL+BuildQuestionProcedure, opts...),
		RecordAttempt: connect.NewClient[RecordAttemptRequest, RecordAttemptResponse](httpClient, baseURL+RecordAttemptProcedure, opts...),
		GetProgress:   connect.NewClient[GetProgressRequest, GetProgressResponse](httpClient, baseURL+GetProgressProcedure, opts...),
	}
}
