package shared

import (
	"context"
	"sync"
)

// Notifier surfaces transient, user-visible messages. Network and API failures
// reach the user only through it, once per attempt.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards every message
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

var _ Notifier = NopNotifier{}

type notifierKey struct{}

// WithNotifier attaches a request-scoped notifier to ctx
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// NotifierFrom returns the notifier attached to ctx, or fallback
func NotifierFrom(ctx context.Context, fallback Notifier) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok && n != nil {
		return n
	}
	if fallback == nil {
		return NopNotifier{}
	}
	return fallback
}

// Notifications collects messages, e.g. to return them in a response.
// It is safe for concurrent use.
type Notifications struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *Notifications) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *Notifications) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

// Last returns the latest error message, or the latest success when no
// error was reported
func (n *Notifications) Last() (message string, isError bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) > 0 {
		return n.errors[len(n.errors)-1], true
	}
	if len(n.successes) > 0 {
		return n.successes[len(n.successes)-1], false
	}
	return "", false
}

var _ Notifier = (*Notifications)(nil)

// Errors returns the error messages in order
func (n *Notifications) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// Successes returns the success messages in order
func (n *Notifications) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}
