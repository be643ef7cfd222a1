package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/model"
)

// Result is the outcome of a connection test that was not cancelled
type Result struct {
	Params  Params
	Status  model.TestStatus
	Err     *apperr.Error
	Elapsed time.Duration
}

// Runner keeps at most one connection test in flight. Starting a test
// cancels the previous one; results of cancelled tests are never reported.
type Runner struct {
	tester Tester
	logger *slog.Logger

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	status   model.TestStatus
	onResult func(Result)
	wg       sync.WaitGroup
}

// NewRunner creates a runner over tester
func NewRunner(tester Tester, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{tester: tester, logger: logger, status: model.TestStatusIdle}
}

// OnResult sets the callback receiving results. It runs on the test goroutine.
func (r *Runner) OnResult(fn func(Result)) {
	r.mu.Lock()
	r.onResult = fn
	r.mu.Unlock()
}

// Start cancels any running test and starts a new one for p
func (r *Runner) Start(ctx context.Context, p Params) {
	runCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.logger.Debug("connection test superseded", "generation", r.gen)
	}
	r.gen++
	gen := r.gen
	r.cancel = cancel
	r.status = model.TestStatusTesting
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(runCtx, cancel, gen, p)
}

func (r *Runner) run(ctx context.Context, cancel context.CancelFunc, gen uint64, p Params) {
	defer r.wg.Done()
	defer cancel()

	start := time.Now()
	err := r.tester.Test(ctx, p)

	res := Result{Params: p, Elapsed: time.Since(start), Status: model.TestStatusSucceeded}
	if err != nil {
		res.Status = model.TestStatusFailed
		res.Err = apperr.Normalize(err)
	}

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.cancel = nil
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		r.status = model.TestStatusCancelled
		r.mu.Unlock()
		return
	}
	r.status = res.Status
	onResult := r.onResult
	r.mu.Unlock()

	if onResult != nil {
		onResult(res)
	}
}

// Cancel aborts the running test, if any
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
	r.gen++
	r.status = model.TestStatusCancelled
}

// Status returns the status of the most recent test
func (r *Runner) Status() model.TestStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Busy reports whether a test is in flight
func (r *Runner) Busy() bool {
	return r.Status().IsActive()
}

// Wait blocks until every started test goroutine has returned
func (r *Runner) Wait() {
	r.wg.Wait()
}
