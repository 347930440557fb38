// Package submission runs form submissions against the upstream API: one at a
// time per form, with a single notification per attempt.
package submission

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/shared"
)

type actorKey struct{}

// WithActor scopes submit guards to one user, so two users filling the same
// form never block each other.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

// Messages are the notifications of one form
type Messages struct {
	Success string
	Failure string // used when the upstream error carries no detail
}

// Runner executes submissions
type Runner struct {
	guards         form.SubmitGuards
	notifier       shared.Notifier
	logger         *zap.Logger
	onUnauthorized func(ctx context.Context)
}

// Option configures a Runner
type Option func(*Runner)

// WithNotifier sets the default notifier. A notifier attached to the request
// context with shared.WithNotifier takes precedence.
func WithNotifier(n shared.Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithUnauthorized sets what happens when the upstream rejects the session
func WithUnauthorized(fn func(ctx context.Context)) Option {
	return func(r *Runner) {
		r.onUnauthorized = fn
	}
}

// NewRunner creates a Runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		notifier: shared.NopNotifier{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the logger submissions report to
func (r *Runner) Logger() *zap.Logger {
	if r == nil || r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}

// Submit runs call under the guard of key. A second submit of the same key
// while one is in flight returns shared.ErrSubmitInFlight without calling
// anything. On success, after runs (cache invalidation) before the success
// notification. Failures notify once, except for an expired session, which
// goes to the unauthorized hook, and for cancellation, which is silent.
func Submit[T any](ctx context.Context, r *Runner, key string, msgs Messages, call func(ctx context.Context) (T, error), after func(ctx context.Context)) (T, error) {
	var zero T
	if actor := actorFrom(ctx); actor != "" {
		key = actor + ":" + key
	}
	if !r.guards.TryBegin(key) {
		r.logger.Debug("submit ignored, another is in flight", zap.String("form", key))
		return zero, shared.ErrSubmitInFlight
	}
	defer r.guards.End(key)

	notifier := shared.NotifierFrom(ctx, r.notifier)

	result, err := call(ctx)
	if err != nil {
		switch {
		case shared.IsUnauthorized(err):
			if r.onUnauthorized != nil {
				r.onUnauthorized(ctx)
			}
		case errors.Is(err, context.Canceled):
		case shared.IsValidation(err):
		default:
			r.logger.Warn("submit failed", zap.String("form", key), zap.Error(err))
			notifier.Error(shared.UserMessage(err, msgs.Failure))
		}
		return zero, err
	}

	if after != nil {
		after(ctx)
	}
	notifier.Success(msgs.Success)
	return result, nil
}
