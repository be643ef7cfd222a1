package ui

import (
	"sync"

	"github.com/deweydb/dewey/internal/route"
)

// Router is the in-window location with a back stack. It satisfies both
// route.Navigator and toast.Navigator.
type Router struct {
	mu        sync.Mutex
	history   []string
	listeners []func(path string)
}

// NewRouter creates a router positioned at start
func NewRouter(start string) *Router {
	return &Router{history: []string{route.Clean(start)}}
}

// Current returns the current path
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Navigate moves to path. With replace the current entry is overwritten
// instead of pushed. Navigating to the current path does nothing.
func (r *Router) Navigate(path string, replace bool) {
	path = route.Clean(path)

	r.mu.Lock()
	top := len(r.history) - 1
	if r.history[top] == path {
		r.mu.Unlock()
		return
	}
	if replace {
		r.history[top] = path
	} else {
		r.history = append(r.history, path)
	}
	listeners := append([]func(string){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// Back pops the current entry; it reports false at the start of history
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return false
	}
	r.history = r.history[:len(r.history)-1]
	path := r.history[len(r.history)-1]
	listeners := append([]func(string){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
	return true
}

// Depth returns the number of history entries
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

// OnChange registers fn to run after every location change
func (r *Router) OnChange(fn func(path string)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}
