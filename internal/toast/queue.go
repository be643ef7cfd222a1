package toast

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deweydb/dewey/internal/apperr"
)

// DefaultDelay separates consecutive notifications so none is collapsed by the surface
const DefaultDelay = time.Second

// ErrAlreadyRunning is returned when a second drain loop is started on the same queue
var ErrAlreadyRunning = errors.New("toast queue already running")

// Queue is the FIFO reporting sink. Enqueue never blocks; Run drains one
// notification at a time and waits Delay between items while more are pending.
type Queue struct {
	presenter Presenter
	policy    Policy
	delay     time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	items   []Notification
	wake    chan struct{}
	running atomic.Bool
}

// Option configures a Queue
type Option func(*Queue)

// WithPolicy sets the presentation policy
func WithPolicy(p Policy) Option {
	return func(q *Queue) { q.policy = p }
}

// WithDelay sets the inter-item delay; non-positive values keep DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.delay = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// NewQueue creates a queue delivering to presenter
func NewQueue(presenter Presenter, opts ...Option) *Queue {
	q := &Queue{
		presenter: presenter,
		delay:     DefaultDelay,
		logger:    slog.Default(),
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// SetPolicy replaces the presentation policy used for later Enqueue calls
func (q *Queue) SetPolicy(p Policy) {
	q.mu.Lock()
	q.policy = p
	q.mu.Unlock()
}

// SetDelay changes the inter-item delay; non-positive values restore DefaultDelay
func (q *Queue) SetDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultDelay
	}
	q.mu.Lock()
	q.delay = d
	q.mu.Unlock()
}

// Enqueue schedules a canonical error for display
func (q *Queue) Enqueue(e *apperr.Error) {
	if e == nil {
		return
	}
	q.mu.Lock()
	policy := q.policy
	q.mu.Unlock()

	n := policy.Build(e)
	q.logger.Debug("toast enqueued",
		"category", e.Category,
		"severity", e.Severity,
		"subcategory", e.Subcategory,
		"title", n.Title)
	q.Notify(n)
}

// Notify schedules a pre-built notification behind everything already queued
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of pending notifications
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear drops every pending notification and dismisses the visible ones
func (q *Queue) Clear() {
	q.mu.Lock()
	dropped := len(q.items)
	q.items = nil
	q.mu.Unlock()

	if dropped > 0 {
		q.logger.Debug("toast queue cleared", "dropped", dropped)
	}
	q.presenter.Dismiss()
}

// Run drains the queue until ctx is done. Two notifications are never shown
// less than the delay apart, even when the second one arrives late.
func (q *Queue) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer q.running.Store(false)

	var last time.Time
	for {
		if q.Len() == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-q.wake:
				continue
			}
		}

		if !last.IsZero() {
			if wait := q.currentDelay() - time.Since(last); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
		}

		// Clear may have emptied the queue while waiting
		n, ok := q.pop()
		if !ok {
			continue
		}
		q.presenter.Show(n)
		last = time.Now()
	}
}

func (q *Queue) currentDelay() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.delay
}

func (q *Queue) pop() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Notification{}, false
	}
	n := q.items[0]
	q.items[0] = Notification{}
	q.items = q.items[1:]
	return n, true
}
