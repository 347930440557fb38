package form

import (
	"context"
	"sync"
	"sync/atomic"
)

// SubmitGuard admits one submission at a time. A submit attempted while
// another is in flight is ignored, not queued.
type SubmitGuard struct {
	inFlight atomic.Bool
}

// TryBegin claims the guard, reporting false when a submit is in flight
func (g *SubmitGuard) TryBegin() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// End releases the guard
func (g *SubmitGuard) End() {
	g.inFlight.Store(false)
}

// InFlight reports whether submit controls should be disabled
func (g *SubmitGuard) InFlight() bool {
	return g.inFlight.Load()
}

// SubmitGuards is a SubmitGuard per form key, for servers that handle many
// forms at once. The zero value is ready to use.
type SubmitGuards struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// TryBegin claims the guard of key
func (g *SubmitGuards) TryBegin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]struct{})
	}
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

// End releases the guard of key
func (g *SubmitGuards) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, key)
}

// Scope tracks whether the owner of some state is still mounted. Async
// completions check Alive before writing, and the context is cancelled on
// Close so in-flight requests can stop early.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup
}

// NewScope creates a live scope derived from parent
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Alive reports whether the owner is still mounted
func (s *Scope) Alive() bool {
	return !s.closed.Load() && s.ctx.Err() == nil
}

// Go runs fn in a tracked goroutine
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Wait blocks until every tracked goroutine returned
func (s *Scope) Wait() {
	s.wg.Wait()
}

// Close marks the owner unmounted and cancels the context. Safe to call more
// than once.
func (s *Scope) Close() {
	s.closed.Store(true)
	s.cancel()
}
