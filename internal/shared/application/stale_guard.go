package application

import "sync"

// StaleGuard discards load results that arrive after the selection they were
// issued for has changed. Views key each load by what they asked for (for the
// day view, user and date); a result is applied only if that key is still the
// current selection when the load completes.
type StaleGuard struct {
	mu      sync.Mutex
	current string
}

// NewStaleGuard creates a guard with no current selection.
func NewStaleGuard() *StaleGuard {
	return &StaleGuard{}
}

// Select marks key as the current selection and returns it unchanged, so
// callers can capture the key they loaded for.
func (g *StaleGuard) Select(key string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = key
	return key
}

// Current returns the current selection key.
func (g *StaleGuard) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Apply runs fn only if key is still the current selection. It returns true
// if fn ran, false if the result was discarded as stale.
func (g *StaleGuard) Apply(key string, fn func()) bool {
	g.mu.Lock()
	if g.current != key {
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()
	fn()
	return true
}
