package toast

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/apperr"
)

type shown struct {
	n  Notification
	at time.Time
}

type recordingPresenter struct {
	mu        sync.Mutex
	shown     []shown
	dismissed int
	active    atomic.Int32
	overlap   atomic.Bool
}

func (p *recordingPresenter) Show(n Notification) {
	if p.active.Add(1) > 1 {
		p.overlap.Store(true)
	}
	defer p.active.Add(-1)

	p.mu.Lock()
	p.shown = append(p.shown, shown{n: n, at: time.Now()})
	p.mu.Unlock()
}

func (p *recordingPresenter) Dismiss() {
	p.mu.Lock()
	p.dismissed++
	p.mu.Unlock()
}

func (p *recordingPresenter) snapshot() []shown {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shown(nil), p.shown...)
}

func startQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestQueue_PreservesOrderWithDelay(t *testing.T) {
	const delay = 20 * time.Millisecond
	p := &recordingPresenter{}
	q := NewQueue(p, WithDelay(delay))

	messages := []string{"first", "second", "third", "fourth"}
	for _, m := range messages {
		q.Enqueue(apperr.New(apperr.CategoryDatabase, apperr.SeverityError, m, "", nil))
	}
	startQueue(t, q)

	require.Eventually(t, func() bool { return len(p.snapshot()) == len(messages) }, 2*time.Second, 5*time.Millisecond)

	got := p.snapshot()
	for i, m := range messages {
		assert.Equal(t, m, got[i].n.Description)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i].at.Sub(got[i-1].at), delay)
		}
	}
	assert.False(t, p.overlap.Load())
	assert.Zero(t, q.Len())
}

func TestQueue_ShowsFirstItemImmediately(t *testing.T) {
	p := &recordingPresenter{}
	q := NewQueue(p, WithDelay(time.Hour))
	startQueue(t, q)

	q.Notify(Success("Connection successful!", ""))

	require.Eventually(t, func() bool { return len(p.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, VariantSuccess, p.snapshot()[0].n.Variant)
}

func TestQueue_ClearDropsPending(t *testing.T) {
	p := &recordingPresenter{}
	q := NewQueue(p, WithDelay(time.Hour))
	startQueue(t, q)

	q.Enqueue(apperr.New(apperr.CategoryIO, apperr.SeverityError, "a", "", nil))
	require.Eventually(t, func() bool { return len(p.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	q.Enqueue(apperr.New(apperr.CategoryIO, apperr.SeverityError, "b", "", nil))
	q.Enqueue(apperr.New(apperr.CategoryIO, apperr.SeverityError, "c", "", nil))
	q.Clear()

	assert.Zero(t, q.Len())
	p.mu.Lock()
	assert.Equal(t, 1, p.dismissed)
	p.mu.Unlock()
	assert.Len(t, p.snapshot(), 1)
}

func TestQueue_SecondRunRejected(t *testing.T) {
	q := NewQueue(&recordingPresenter{})
	startQueue(t, q)

	require.Eventually(t, func() bool { return q.running.Load() }, time.Second, time.Millisecond)
	assert.ErrorIs(t, q.Run(context.Background()), ErrAlreadyRunning)
}

func TestQueue_EnqueueNilIgnored(t *testing.T) {
	q := NewQueue(&recordingPresenter{})
	q.Enqueue(nil)
	assert.Zero(t, q.Len())
}

func TestQueue_LateArrivalStillWaitsForDelay(t *testing.T) {
	const delay = 60 * time.Millisecond
	p := &recordingPresenter{}
	q := NewQueue(p, WithDelay(delay))
	startQueue(t, q)

	q.Notify(Success("one", ""))
	require.Eventually(t, func() bool { return len(p.snapshot()) == 1 }, time.Second, time.Millisecond)
	q.Notify(Success("two", ""))
	require.Eventually(t, func() bool { return len(p.snapshot()) == 2 }, time.Second, time.Millisecond)

	got := p.snapshot()
	assert.GreaterOrEqual(t, got[1].at.Sub(got[0].at), delay)
}

func TestQueue_SetDelay(t *testing.T) {
	q := NewQueue(&recordingPresenter{})
	q.SetDelay(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, q.currentDelay())

	q.SetDelay(0)
	assert.Equal(t, DefaultDelay, q.currentDelay())
}
