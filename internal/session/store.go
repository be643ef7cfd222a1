// Package session holds the process-wide record of the signed-in user and the
// path an unauthenticated visitor tried to reach before being sent to sign in.
package session

import (
	"sync"

	"github.com/deweydb/dewey/internal/model"
)

// Store is the authoritative current-user record. Create one per process and
// inject it; listeners are notified after every change, in subscription order.
type Store struct {
	mu        sync.RWMutex
	user      *model.User
	returnTo  string
	nextID    int
	listeners map[int]func(*model.User)
	order     []int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{listeners: make(map[int]func(*model.User))}
}

// Current returns the signed-in user, if any
func (s *Store) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// UserID returns the signed-in user's ID or an empty string
func (s *Store) UserID() string {
	u, ok := s.Current()
	if !ok {
		return ""
	}
	return u.ID
}

// Set replaces the signed-in user
func (s *Store) Set(u model.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.notify(&u)
}

// Clear signs the user out. The return-to path is left untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	had := s.user != nil
	s.user = nil
	s.mu.Unlock()
	if had {
		s.notify(nil)
	}
}

// Subscribe registers fn for user changes. The returned func removes it.
func (s *Store) Subscribe(fn func(*model.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// ReturnTo returns the recorded post-login destination
func (s *Store) ReturnTo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.returnTo
}

// SetReturnTo records the path to return to after sign-in
func (s *Store) SetReturnTo(path string) {
	s.mu.Lock()
	s.returnTo = path
	s.mu.Unlock()
}

// ClearReturnTo forgets the recorded destination
func (s *Store) ClearReturnTo() {
	s.SetReturnTo("")
}

func (s *Store) notify(u *model.User) {
	s.mu.RLock()
	fns := make([]func(*model.User), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		var arg *model.User
		if u != nil {
			cp := *u
			arg = &cp
		}
		fn(arg)
	}
}
