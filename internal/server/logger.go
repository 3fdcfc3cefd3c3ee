package server

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// NewLoggingInterceptor logs every unary call with its procedure, code and duration.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("status", statusOf(err)),
				slog.Duration("duration", time.Since(start)),
			}
			if peer := req.Peer(); peer.Addr != "" {
				attrs = append(attrs, slog.String("peer", peer.Addr))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			slog.Default().LogAttrs(ctx, logLevel(err), "request completed", attrs...)

			return resp, err
		}
	}
}

// statusOf is "ok" for a nil error, since connect.CodeOf(nil) is unknown.
func statusOf(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}

func logLevel(err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	switch connect.CodeOf(err) {
	case connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeNotFound:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
