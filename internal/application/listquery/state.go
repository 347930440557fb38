// Package listquery composes a debounced search, categorical filters and a
// page number into one fetch key, and derives the page-button window shown
// under a list.
package listquery

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Defaults shared by every list
const (
	DefaultPageSize   = 20
	DefaultMaxVisible = 5
	// FilterAll is the option value meaning "no filter"
	FilterAll = "all"
)

// State is the query state of one list
type State struct {
	RawSearch string
	Search    string
	Filters   map[string]string
	Page      int
	PageSize  int
}

// NewState creates a state on page 1
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{Filters: map[string]string{}, Page: 1, PageSize: pageSize}
}

// Key returns the fetch key of the state
func (s State) Key(resource string) Key {
	filters := make(map[string]string, len(s.Filters))
	for name, v := range s.Filters {
		if v == "" || v == FilterAll {
			continue
		}
		filters[name] = v
	}
	return Key{
		Resource: resource,
		Search:   strings.TrimSpace(s.Search),
		Filters:  filters,
		Page:     s.Page,
		PageSize: s.PageSize,
	}
}

// HasFilters reports whether any search text or filter is active
func (s State) HasFilters() bool {
	if s.RawSearch != "" || s.Search != "" {
		return true
	}
	for _, v := range s.Filters {
		if v != "" && v != FilterAll {
			return true
		}
	}
	return false
}

// Key identifies one page fetch. Two keys with the same String are the same
// request.
type Key struct {
	Resource string
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Filter returns one active filter value
func (k Key) Filter(name string) string {
	return k.Filters[name]
}

// Query renders the key as upstream query parameters
func (k Key) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(k.Page))
	q.Set("page_size", strconv.Itoa(k.PageSize))
	if k.Search != "" {
		q.Set("search", k.Search)
	}
	for name, v := range k.Filters {
		q.Set(name, v)
	}
	return q
}

// String is the canonical form: resource, then search, sorted filters, page
// and page size.
func (k Key) String() string {
	names := make([]string, 0, len(k.Filters))
	for name := range k.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Resource)
	b.WriteString("?search=")
	b.WriteString(url.QueryEscape(k.Search))
	for _, name := range names {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(k.Filters[name]))
	}
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(k.Page))
	b.WriteString("&page_size=")
	b.WriteString(strconv.Itoa(k.PageSize))
	return b.String()
}

// Page is one page of a paginated upstream response
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// TotalPages is never below 1 so an empty list still shows page 1 of 1
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
