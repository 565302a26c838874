package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated user's id. Per-user rate limits key
// off it.
const CtxKeyUserID ctxKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
