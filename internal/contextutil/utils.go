package contextutil

import "context"

type ctxKey string

const requestIDKey ctxKey = "requestID"

// ContextWithRequestID кладёт идентификатор запроса в контекст
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext извлекает идентификатор запроса из контекста
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
