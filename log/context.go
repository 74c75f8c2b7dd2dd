package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type correlationIDType int

const (
	requestIDKey correlationIDType = iota
	requestFieldsKey
)

// WithRequestID returns a context which knows its request ID.
// A request ID tracks the lifecycle of a single request, such as the verification of a
// batch of candidates, across goroutines. Fields are printed along with the ID by ZContext.
func WithRequestID(ctx context.Context, requestID string, fields ...zap.Field) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if len(fields) > 0 {
		ctx = context.WithValue(ctx, requestFieldsKey, fields)
	}
	return ctx
}

// WithNewRequestID does the same thing as WithRequestID but generates a new, random ID.
func WithNewRequestID(ctx context.Context, fields ...zap.Field) context.Context {
	return WithRequestID(ctx, uuid.NewString(), fields...)
}

// ExtractRequestID extracts the request id from a context object.
func ExtractRequestID(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id, true
	}
	return "", false
}

func extractRequestFields(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(requestFieldsKey).([]zap.Field)
	return fields
}

type contextMarshaler struct {
	ctx context.Context
}

func (c contextMarshaler) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	if id, ok := ExtractRequestID(c.ctx); ok {
		encoder.AddString("request_id", id)
	}
	for _, field := range extractRequestFields(c.ctx) {
		field.AddTo(encoder)
	}
	return nil
}

// ZContext inlines the request id and fields stored in ctx into a log entry.
func ZContext(ctx context.Context) zap.Field {
	return zap.Inline(contextMarshaler{ctx: ctx})
}
