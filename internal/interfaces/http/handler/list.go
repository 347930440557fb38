package handler

import (
	"context"
	"net/url"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/domain/shared"
)

// ListFunc loads one page of a list for the request's query parameters
type ListFunc func(ctx context.Context, q url.Values) (any, error)

// ListOf adapts a typed list operation to a ListFunc
func ListOf[T any](fn func(ctx context.Context, q url.Values) (*listquery.Result[T], error)) ListFunc {
	return func(ctx context.Context, q url.Values) (any, error) {
		return fn(ctx, q)
	}
}

// ListSource is one list the dashboard can query
type ListSource struct {
	Definition listquery.Definition
	Load       ListFunc
}

// ListHandler serves the filtered, paginated lists
type ListHandler struct {
	BaseHandler
	sources map[string]ListSource
}

// NewListHandler creates a new ListHandler keyed by each definition's
// resource
func NewListHandler(sources ...ListSource) *ListHandler {
	h := &ListHandler{sources: make(map[string]ListSource, len(sources))}
	for _, s := range sources {
		h.sources[s.Definition.Resource] = s
	}
	return h
}

// FilterInfo describes one filter of a list
type FilterInfo struct {
	Name    string          `json:"name"`
	Options []shared.Option `json:"options,omitempty"`
}

// List godoc
// @Summary      Query a list
// @Description  Free-text search, categorical filters and a 1-based page.
// @Description  The response carries the page window for the pager.
// @Tags         lists
// @Produce      json
// @Param        resource path string true "customers, projects, units or sales"
// @Param        search query string false "Search text"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /lists/{resource} [get]
func (h *ListHandler) List(c *gin.Context) {
	src, ok := h.sources[c.Param("resource")]
	if !ok {
		h.NotFound(c, "Lista não encontrada")
		return
	}

	result, err := src.Load(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Filters godoc
// @Summary      Describe the filters of a list
// @Tags         lists
// @Produce      json
// @Param        resource path string true "customers, projects, units or sales"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /lists/{resource}/filters [get]
func (h *ListHandler) Filters(c *gin.Context) {
	src, ok := h.sources[c.Param("resource")]
	if !ok {
		h.NotFound(c, "Lista não encontrada")
		return
	}

	filters := make([]FilterInfo, 0, len(src.Definition.Filters))
	for _, f := range src.Definition.Filters {
		filters = append(filters, FilterInfo{Name: f.Name, Options: f.Options})
	}
	h.Success(c, filters)
}

// Resources returns the names of the registered lists, sorted
func (h *ListHandler) Resources() []string {
	names := make([]string, 0, len(h.sources))
	for name := range h.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
