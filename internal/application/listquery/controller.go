package listquery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/shared"
)

// Fetcher loads one page for a key
type Fetcher[T any] func(ctx context.Context, key Key) (Page[T], error)

// Snapshot is a consistent read of a list's state
type Snapshot[T any] struct {
	State   State
	Key     Key
	Items   []T
	Total   int
	Loading bool
	Err     error
	Window  Window
}

// Controller drives one list: it owns the query state, promotes search text
// after a quiet interval and fetches whenever the key changes.
//
// A fetch is started only when the computed key differs from the last one
// fetched. Results carry a request token; a result whose token is stale or
// that arrives after Close is dropped.
type Controller[T any] struct {
	resource       string
	fetch          Fetcher[T]
	logger         *zap.Logger
	notifier       shared.Notifier
	errorMessage   string
	onUnauthorized func()
	onChange       func()
	maxVisible     int
	scope          *form.Scope
	debouncer      *Debouncer

	mu      sync.Mutex
	state   State
	lastKey string
	token   uint64
	loading bool
	items   []T
	total   int
	err     error
}

// ControllerOption configures a Controller
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	clock          clockwork.Clock
	debounce       time.Duration
	pageSize       int
	maxVisible     int
	logger         *zap.Logger
	notifier       shared.Notifier
	errorMessage   string
	onUnauthorized func()
	onChange       func()
	ctx            context.Context
	filters        map[string]string
}

// WithClock sets the debounce clock
func WithClock(c clockwork.Clock) ControllerOption {
	return func(o *controllerOptions) { o.clock = c }
}

// WithDebounce sets the search quiet interval
func WithDebounce(d time.Duration) ControllerOption {
	return func(o *controllerOptions) { o.debounce = d }
}

// WithPageSize sets the fixed page size
func WithPageSize(n int) ControllerOption {
	return func(o *controllerOptions) { o.pageSize = n }
}

// WithMaxVisible sets how many page buttons the window shows
func WithMaxVisible(n int) ControllerOption {
	return func(o *controllerOptions) { o.maxVisible = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ControllerOption {
	return func(o *controllerOptions) { o.logger = l }
}

// WithNotifier sets where fetch failures are reported
func WithNotifier(n shared.Notifier, message string) ControllerOption {
	return func(o *controllerOptions) {
		o.notifier = n
		o.errorMessage = message
	}
}

// WithUnauthorized is called instead of the notifier when a fetch is rejected
// for an expired session
func WithUnauthorized(fn func()) ControllerOption {
	return func(o *controllerOptions) { o.onUnauthorized = fn }
}

// WithChangeHook is called after every state change
func WithChangeHook(fn func()) ControllerOption {
	return func(o *controllerOptions) { o.onChange = fn }
}

// WithParent ties the controller's lifetime to ctx
func WithParent(ctx context.Context) ControllerOption {
	return func(o *controllerOptions) { o.ctx = ctx }
}

// WithInitialFilters seeds filter values without a fetch per filter
func WithInitialFilters(filters map[string]string) ControllerOption {
	return func(o *controllerOptions) { o.filters = filters }
}

// NewController creates a list controller and starts the first fetch
func NewController[T any](resource string, fetch Fetcher[T], opts ...ControllerOption) *Controller[T] {
	o := controllerOptions{
		debounce:     DefaultDebounce,
		pageSize:     DefaultPageSize,
		maxVisible:   DefaultMaxVisible,
		logger:       zap.NewNop(),
		notifier:     shared.NopNotifier{},
		errorMessage: "Erro ao carregar dados",
		ctx:          context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller[T]{
		resource:       resource,
		fetch:          fetch,
		logger:         o.logger.With(zap.String("list", resource)),
		notifier:       o.notifier,
		errorMessage:   o.errorMessage,
		onUnauthorized: o.onUnauthorized,
		onChange:       o.onChange,
		maxVisible:     o.maxVisible,
		scope:          form.NewScope(o.ctx),
		debouncer:      NewDebouncer(o.clock, o.debounce),
		state:          NewState(o.pageSize),
	}
	for name, v := range o.filters {
		c.state.Filters[name] = v
	}

	c.mu.Lock()
	c.refreshLocked()
	c.mu.Unlock()
	return c
}

// SetSearch buffers raw search text. The active search term follows after
// the quiet interval, resetting the page to 1.
func (c *Controller[T]) SetSearch(raw string) {
	c.mu.Lock()
	c.state.RawSearch = raw
	c.mu.Unlock()
	c.changed()

	c.debouncer.Trigger(c.promoteSearch)
}

func (c *Controller[T]) promoteSearch() {
	c.mu.Lock()
	if !c.scope.Alive() {
		c.mu.Unlock()
		return
	}
	if c.state.Search != c.state.RawSearch {
		c.state.Search = c.state.RawSearch
		c.state.Page = 1
	}
	c.refreshLocked()
	c.mu.Unlock()
	c.changed()
}

// SetFilter changes one filter and resets the page to 1 immediately
func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	if c.state.Filters[name] == value {
		c.mu.Unlock()
		return
	}
	c.state.Filters[name] = value
	c.state.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.changed()
}

// ClearFilters resets search, every filter and the page
func (c *Controller[T]) ClearFilters() {
	c.debouncer.Cancel()
	c.mu.Lock()
	c.state.RawSearch = ""
	c.state.Search = ""
	c.state.Filters = map[string]string{}
	c.state.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.changed()
}

// SetPage moves to page. Ignored while a fetch is in flight or when page is
// outside the known range.
func (c *Controller[T]) SetPage(page int) bool {
	c.mu.Lock()
	if c.loading || page < 1 || page > TotalPages(c.total, c.state.PageSize) || page == c.state.Page {
		c.mu.Unlock()
		return false
	}
	c.state.Page = page
	c.refreshLocked()
	c.mu.Unlock()
	c.changed()
	return true
}

// Next moves one page forward
func (c *Controller[T]) Next() bool {
	c.mu.Lock()
	page := c.state.Page + 1
	c.mu.Unlock()
	return c.SetPage(page)
}

// Prev moves one page back
func (c *Controller[T]) Prev() bool {
	c.mu.Lock()
	page := c.state.Page - 1
	c.mu.Unlock()
	return c.SetPage(page)
}

// Retry refetches the current key after a failure. Failures are never
// retried automatically.
func (c *Controller[T]) Retry() {
	c.mu.Lock()
	c.lastKey = ""
	c.refreshLocked()
	c.mu.Unlock()
	c.changed()
}

// refreshLocked starts a fetch when the key changed. Callers hold c.mu.
func (c *Controller[T]) refreshLocked() {
	key := c.state.Key(c.resource)
	ks := key.String()
	if ks == c.lastKey || !c.scope.Alive() {
		return
	}
	c.lastKey = ks
	c.token++
	token := c.token
	c.loading = true
	c.err = nil

	c.scope.Go(func(ctx context.Context) {
		page, err := c.fetch(ctx, key)
		c.complete(token, ks, page, err)
	})
}

func (c *Controller[T]) complete(token uint64, key string, page Page[T], err error) {
	c.mu.Lock()
	if token != c.token || !c.scope.Alive() {
		c.mu.Unlock()
		c.logger.Debug("dropping stale list response", zap.String("key", key))
		return
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.mu.Unlock()
		c.reportError(err)
		c.changed()
		return
	}
	c.items = page.Items
	c.total = page.Total
	c.mu.Unlock()
	c.changed()
}

func (c *Controller[T]) reportError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if shared.IsUnauthorized(err) && c.onUnauthorized != nil {
		c.logger.Info("list fetch unauthorized")
		c.onUnauthorized()
		return
	}
	c.logger.Warn("list fetch failed", zap.Error(err))
	c.notifier.Error(c.errorMessage)
}

func (c *Controller[T]) changed() {
	if c.onChange != nil && c.scope.Alive() {
		c.onChange()
	}
}

// Snapshot returns the current state and the page window
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.Filters = make(map[string]string, len(c.state.Filters))
	for k, v := range c.state.Filters {
		state.Filters[k] = v
	}
	return Snapshot[T]{
		State:   state,
		Key:     state.Key(c.resource),
		Items:   c.items,
		Total:   c.total,
		Loading: c.loading,
		Err:     c.err,
		Window:  ComputeWindow(c.state.Page, TotalPages(c.total, c.state.PageSize), c.maxVisible, c.loading),
	}
}

// Loading reports whether a fetch is in flight
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Wait blocks until every started fetch has returned
func (c *Controller[T]) Wait() {
	c.scope.Wait()
}

// Close unmounts the list: the pending search is dropped and in-flight
// results are discarded.
func (c *Controller[T]) Close() {
	c.debouncer.Stop()
	c.scope.Close()
}
