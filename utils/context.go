package utils

import (
	"context"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

type rqIDKey struct{}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

// WithRequestID returns a copy of ctx carrying a fresh request id.
func WithRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, rqIDKey{}, uuid.NewString())
}

func CreateCtxWithRqID(c tele.Context) context.Context {
	rqId, ok := c.Get("rqID").(string)
	if !ok {
		return WithRequestID(context.Background())
	}
	return context.WithValue(context.Background(), rqIDKey{}, rqId)
}
