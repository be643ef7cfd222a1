// Package backend is the command-invocation boundary to the native backend.
// Rejections are opaque; callers pass them to apperr.Normalize.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invoker runs a named backend command. out, when non-nil, receives the
// decoded result.
type Invoker interface {
	Invoke(ctx context.Context, command string, args, out any) error
}

// FuncInvoker adapts a function to Invoker
type FuncInvoker func(ctx context.Context, command string, args, out any) error

// Invoke calls f
func (f FuncInvoker) Invoke(ctx context.Context, command string, args, out any) error {
	return f(ctx, command, args, out)
}

// Rejection is a non-successful backend response. Its body is the opaque
// rejection value.
type Rejection struct {
	Command    string
	StatusCode int
	Body       json.RawMessage
}

// Error implements the error interface
func (r *Rejection) Error() string {
	if len(r.Body) == 0 {
		return fmt.Sprintf("backend command %s rejected with status %d", r.Command, r.StatusCode)
	}
	return string(r.Body)
}

// Payload returns the rejection body for normalization
func (r *Rejection) Payload() []byte {
	return r.Body
}

// Decode copies a result value into out through JSON. In-process invokers use
// it to honor the same contract as the HTTP transport.
func Decode(result, out any) error {
	if out == nil {
		return nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
