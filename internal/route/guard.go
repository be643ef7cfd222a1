package route

import (
	"log/slog"
	"sync"
)

// Navigator performs navigation requested by the guard
type Navigator interface {
	Navigate(path string, replace bool)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string, replace bool)

// Navigate calls f
func (f NavigatorFunc) Navigate(path string, replace bool) { f(path, replace) }

// ReturnToRecorder stores the path to return to after sign-in
type ReturnToRecorder interface {
	SetReturnTo(path string)
	ClearReturnTo()
}

// Guard applies decisions. A redirect is issued only when the decision
// differs from the previous one.
type Guard struct {
	resolver *Resolver
	nav      Navigator
	returnTo ReturnToRecorder
	logger   *slog.Logger

	mu      sync.Mutex
	prev    Decision
	applied bool
}

// NewGuard creates a guard. returnTo may be nil.
func NewGuard(r *Resolver, nav Navigator, returnTo ReturnToRecorder, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{resolver: r, nav: nav, returnTo: returnTo, logger: logger}
}

// Apply resolves in and performs the redirect effects if the decision changed.
// Navigation happens outside the guard's lock so the navigator may call Apply again.
func (g *Guard) Apply(in Inputs) Decision {
	d := g.resolver.Resolve(in)

	g.mu.Lock()
	changed := !g.applied || d != g.prev
	g.prev = d
	g.applied = true
	g.mu.Unlock()

	if !changed || d.Kind != Redirect {
		return d
	}

	g.logger.Debug("route redirect",
		"rule", d.Rule,
		"from", Clean(in.CurrentPath),
		"to", d.Path)

	if g.returnTo != nil {
		if d.ReturnTo != "" {
			g.returnTo.SetReturnTo(d.ReturnTo)
		}
		if d.ConsumeReturnTo {
			g.returnTo.ClearReturnTo()
		}
	}
	if g.nav != nil {
		g.nav.Navigate(d.Path, d.Replace)
	}
	return d
}

// Last returns the most recent decision
func (g *Guard) Last() (Decision, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prev, g.applied
}

// Reset forgets the previous decision so the next Apply acts unconditionally
func (g *Guard) Reset() {
	g.mu.Lock()
	g.prev = Decision{}
	g.applied = false
	g.mu.Unlock()
}
