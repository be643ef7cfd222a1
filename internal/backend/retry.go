package backend

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/deweydb/dewey/internal/apperr"
)

// RetryPolicy bounds retries of read-only commands
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	MaxRetries      uint64
}

// DefaultRetryPolicy retries briefly; the UI is waiting on the answer.
var DefaultRetryPolicy = RetryPolicy{
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  5 * time.Second,
	MaxRetries:      3,
}

// NoRetry runs an operation once
var NoRetry = RetryPolicy{}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	if p.MaxRetries == 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = p.MaxElapsedTime
	b.RandomizationFactor = 0.1
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// transient reports whether a failure is worth retrying: database, IO and
// connection trouble. Everything else is permanent.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch apperr.Normalize(err).Category {
	case apperr.CategoryDatabase, apperr.CategoryIO, apperr.CategoryConnection:
		return true
	}
	return false
}

func retry(ctx context.Context, p RetryPolicy, onRetry func(error, time.Duration), op func() error) error {
	err := backoff.RetryNotify(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if transient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, p.backOff(ctx), onRetry)

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}
