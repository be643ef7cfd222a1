package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/model"
)

// blockingTester blocks every test until released or cancelled.
type blockingTester struct {
	inFlight atomic.Int32
	release  chan struct{}
	started  chan string
}

func newBlockingTester() *blockingTester {
	return &blockingTester{release: make(chan struct{}), started: make(chan string, 8)}
}

func (b *blockingTester) Test(ctx context.Context, p Params) error {
	b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	b.started <- p.Name

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.release:
		if p.Host == "bad" {
			return errors.New("bad handshake")
		}
		return nil
	}
}

type resultLog struct {
	mu      sync.Mutex
	results []Result
}

func (l *resultLog) add(r Result) {
	l.mu.Lock()
	l.results = append(l.results, r)
	l.mu.Unlock()
}

func (l *resultLog) all() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Result(nil), l.results...)
}

func TestRunner_NewTestCancelsPrevious(t *testing.T) {
	tester := newBlockingTester()
	log := &resultLog{}
	r := NewRunner(tester, nil)
	r.OnResult(log.add)

	r.Start(context.Background(), Params{Name: "first"})
	assert.Equal(t, "first", <-tester.started)

	r.Cancel()
	r.Start(context.Background(), Params{Name: "second"})
	assert.Equal(t, "second", <-tester.started)

	assert.True(t, r.Busy())
	require.Eventually(t, func() bool { return tester.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	close(tester.release)
	r.Wait()

	got := log.all()
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Params.Name)
	assert.Equal(t, model.TestStatusSucceeded, got[0].Status)
	assert.Equal(t, model.TestStatusSucceeded, r.Status())
}

func TestRunner_StartSupersedesWithoutExplicitCancel(t *testing.T) {
	tester := newBlockingTester()
	log := &resultLog{}
	r := NewRunner(tester, nil)
	r.OnResult(log.add)

	for _, name := range []string{"a", "b", "c"} {
		r.Start(context.Background(), Params{Name: name})
		<-tester.started
	}
	require.Eventually(t, func() bool { return tester.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	close(tester.release)
	r.Wait()

	got := log.all()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Params.Name)
}

func TestRunner_FailureReported(t *testing.T) {
	tester := newBlockingTester()
	close(tester.release)
	log := &resultLog{}
	r := NewRunner(tester, nil)
	r.OnResult(log.add)

	r.Start(context.Background(), Params{Name: "x", Host: "bad"})
	r.Wait()

	got := log.all()
	require.Len(t, got, 1)
	assert.Equal(t, model.TestStatusFailed, got[0].Status)
	require.NotNil(t, got[0].Err)
	assert.Equal(t, apperr.CategoryUnknown, got[0].Err.Category)
	assert.Equal(t, "bad handshake", got[0].Err.Message)
}

func TestRunner_CancelReportsNothing(t *testing.T) {
	tester := newBlockingTester()
	log := &resultLog{}
	r := NewRunner(tester, nil)
	r.OnResult(log.add)

	r.Start(context.Background(), Params{Name: "only"})
	<-tester.started
	r.Cancel()
	r.Wait()

	assert.Empty(t, log.all())
	assert.Equal(t, model.TestStatusCancelled, r.Status())
	assert.False(t, r.Busy())
}

func TestRunner_ParentContextCancelled(t *testing.T) {
	tester := newBlockingTester()
	log := &resultLog{}
	r := NewRunner(tester, nil)
	r.OnResult(log.add)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx, Params{Name: "p"})
	<-tester.started
	cancel()
	r.Wait()

	assert.Empty(t, log.all())
	assert.Equal(t, model.TestStatusCancelled, r.Status())
}

func TestRunner_IdleInitially(t *testing.T) {
	r := NewRunner(TesterFunc(func(context.Context, Params) error { return nil }), nil)
	assert.Equal(t, model.TestStatusIdle, r.Status())
	r.Cancel()
	assert.Equal(t, model.TestStatusIdle, r.Status())
}
