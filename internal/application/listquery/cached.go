package listquery

import (
	"context"
	"encoding/json"
	"fmt"
)

// Cache is the shared query cache. Concurrent loads of one key share a single
// call to load.
type Cache interface {
	GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) ([]byte, error)) ([]byte, error)
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Cached wraps fetch so identical keys are served from cache. A nil cache
// returns fetch unchanged.
func Cached[T any](cache Cache, fetch Fetcher[T]) Fetcher[T] {
	if cache == nil {
		return fetch
	}
	return func(ctx context.Context, key Key) (Page[T], error) {
		raw, err := cache.GetOrLoad(ctx, key.String(), func(ctx context.Context) ([]byte, error) {
			page, err := fetch(ctx, key)
			if err != nil {
				return nil, err
			}
			return json.Marshal(page)
		})
		if err != nil {
			return Page[T]{}, err
		}

		var page Page[T]
		if err := json.Unmarshal(raw, &page); err != nil {
			return Page[T]{}, fmt.Errorf("decode cached %s page: %w", key.Resource, err)
		}
		return page, nil
	}
}

// Invalidate drops every cached page of resource
func Invalidate(ctx context.Context, cache Cache, resource string) error {
	if cache == nil {
		return nil
	}
	return cache.InvalidatePrefix(ctx, resource+"?")
}
