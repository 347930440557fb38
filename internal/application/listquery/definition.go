package listquery

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/constructpro/dashboard/internal/domain/shared"
)

// Filter declares one categorical filter of a list
type Filter struct {
	Name string
	// Options restricts the accepted values; empty accepts any value
	Options []shared.Option
}

// Definition declares what a list accepts in its query
type Definition struct {
	Resource string
	Filters  []Filter
}

// Parse builds a state from request query parameters. The search text is
// taken as settled: callers that type into the box debounce before asking.
// Unknown parameters are ignored and a malformed page falls back to 1.
func (d Definition) Parse(q url.Values, pageSize int) (State, error) {
	state := NewState(pageSize)
	state.Search = strings.TrimSpace(q.Get("search"))
	state.RawSearch = state.Search

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		state.Page = p
	}

	verr := shared.NewValidationError()
	for _, f := range d.Filters {
		v := strings.TrimSpace(q.Get(f.Name))
		if v == "" || v == FilterAll {
			continue
		}
		if len(f.Options) > 0 && !shared.HasValue(f.Options, v) {
			verr.Add(f.Name, "Opção inválida")
			continue
		}
		state.Filters[f.Name] = v
	}
	if err := verr.OrNil(); err != nil {
		return State{}, err
	}
	return state, nil
}

// Result is one loaded page with its page window
type Result[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	PageSize   int    `json:"page_size"`
	HasFilters bool   `json:"has_filters"`
	Window     Window `json:"window"`
}

// Load fetches the page of state. A page past the end is clamped in the
// window; the items are whatever the upstream returned for it.
func Load[T any](ctx context.Context, resource string, state State, maxVisible int, fetch Fetcher[T]) (*Result[T], error) {
	page, err := fetch(ctx, state.Key(resource))
	if err != nil {
		return nil, err
	}
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items:      items,
		Total:      page.Total,
		PageSize:   state.PageSize,
		HasFilters: state.HasFilters(),
		Window:     ComputeWindow(state.Page, TotalPages(page.Total, state.PageSize), maxVisible, false),
	}, nil
}

type scopedCache struct {
	cache  Cache
	prefix string
}

// Scoped partitions cache by scope, e.g. a tenant, so pages of one scope are
// never served to another. An empty scope returns cache unchanged.
func Scoped(cache Cache, scope string) Cache {
	if cache == nil || scope == "" {
		return cache
	}
	return &scopedCache{cache: cache, prefix: scope + "/"}
}

func (s *scopedCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	return s.cache.GetOrLoad(ctx, s.prefix+key, load)
}

func (s *scopedCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	return s.cache.InvalidatePrefix(ctx, s.prefix+prefix)
}
