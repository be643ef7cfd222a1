package errhandler

import (
	"context"
	"fmt"

	"github.com/deweydb/dewey/internal/apperr"
)

type ctxKey struct{}

// WithHandler returns a context carrying h
func WithHandler(ctx context.Context, h *Handler) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// FromContext returns the Handler installed by WithHandler
func FromContext(ctx context.Context) (*Handler, error) {
	h, ok := ctx.Value(ctxKey{}).(*Handler)
	if !ok || h == nil {
		return nil, fmt.Errorf("handler lookup: %w", ErrOutsideProvider)
	}
	return h, nil
}

// RunCommand runs fn and routes any failure through the Handler found in ctx.
// Without a Handler the misuse itself is normalized and returned.
func RunCommand[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, *apperr.Error) {
	var zero T

	h, err := FromContext(ctx)
	if err != nil {
		return zero, apperr.Normalize(prenormalize(err))
	}

	v, err := fn(ctx)
	if err != nil {
		return zero, h.Report(err)
	}
	return v, nil
}
