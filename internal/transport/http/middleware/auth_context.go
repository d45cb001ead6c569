package middleware

import "context"

type ctxKey string

const (
	ctxUserID    ctxKey = "user_id"
	ctxUserEmail ctxKey = "user_email"
)

func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUserEmail, email)
	return ctx
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserID).(string)
	return v, ok && v != ""
}

func UserEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserEmail).(string)
	return v, ok && v != ""
}
