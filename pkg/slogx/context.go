package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithActionID tags the context logger with a correlation id for one user
// action, so every log line it produces can be tied back together.
func WithActionID(ctx context.Context, actionID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("action_id", actionID))
}
