package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/constructpro/dashboard/internal/application/listquery"
)

// Observer is told about each cache outcome: "hit", "miss" or "error"
type Observer interface {
	ObserveCache(result string)
}

// QueryCache serves list pages by query key. Concurrent misses for the same
// key share one upstream call.
type QueryCache struct {
	store    Store
	ttl      time.Duration
	group    singleflight.Group
	logger   *zap.Logger
	observer Observer
}

// QueryCacheOption configures a QueryCache
type QueryCacheOption func(*QueryCache)

// WithCacheLogger sets the logger
func WithCacheLogger(logger *zap.Logger) QueryCacheOption {
	return func(c *QueryCache) {
		c.logger = logger
	}
}

// WithObserver reports hits and misses, e.g. to Prometheus
func WithObserver(o Observer) QueryCacheOption {
	return func(c *QueryCache) {
		c.observer = o
	}
}

// NewQueryCache creates a query cache over store
func NewQueryCache(store Store, ttl time.Duration, opts ...QueryCacheOption) *QueryCache {
	c := &QueryCache{
		store:  store,
		ttl:    ttl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad implements listquery.Cache. Failed loads are not cached and a
// store failure degrades to a direct load.
func (c *QueryCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if val, ok, err := c.store.Get(ctx, key); err != nil {
		c.observe("error")
		c.logger.Warn("query cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		c.observe("hit")
		return val, nil
	}

	c.observe("miss")
	v, err, shared := c.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, val, c.ttl); err != nil {
			c.logger.Warn("query cache write failed", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("shared in-flight query", zap.String("key", key))
	}
	return v.([]byte), nil
}

// InvalidatePrefix implements listquery.Cache
func (c *QueryCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	n, err := c.store.DeletePrefix(ctx, prefix)
	if err != nil {
		return err
	}
	c.logger.Debug("query cache invalidated", zap.String("prefix", prefix), zap.Int("entries", n))
	return nil
}

// Close releases the underlying store
func (c *QueryCache) Close() error {
	return c.store.Close()
}

func (c *QueryCache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCache(result)
	}
}

var _ listquery.Cache = (*QueryCache)(nil)
