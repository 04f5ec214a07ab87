package logger

import "context"

type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyLogger    contextKey = "logger"
)

func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

func WithUserIDContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

func WithLoggerContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, log)
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(ContextKeyRequestID).(string)
	return requestID
}

func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(ContextKeyUserID).(int64)
	return userID
}

// FromContext returns the request-scoped logger, or the global one.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(ContextKeyLogger).(Logger); ok {
		return log
	}
	return Get()
}
