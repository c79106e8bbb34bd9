package logging

import (
	"context"
	"slices"
)

type ctxKey struct{}

// ContextWith returns ctx carrying extra key-value pairs that every
// backend appends to records logged with it.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := argsFrom(ctx)
	return context.WithValue(ctx, ctxKey{}, append(slices.Clip(prev), args...))
}

func argsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(ctxKey{}).([]any)
	return args
}

// withContext places context pairs before the call-site pairs.
func withContext(ctx context.Context, args []any) []any {
	extra := argsFrom(ctx)
	if len(extra) == 0 {
		return args
	}
	return append(slices.Clip(extra), args...)
}
