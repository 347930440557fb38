// Package sale serves the sales funnel list.
package sale

import (
	"context"
	"net/url"
	"time"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/domain/sale"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Resource is the upstream collection and cache namespace
const Resource = "sales"

// Filter names as the client sends them
const (
	FilterStatus   = "status"
	FilterPeriod   = "period"
	FilterOnlyMine = "only_mine"
)

// OnlyMineOptions is the single choice of the "only my sales" toggle
var OnlyMineOptions = []shared.Option{{Value: "true", Label: "Minhas vendas"}}

// ListDefinition is the sales list: search plus status, period and the
// "only my sales" toggle
var ListDefinition = listquery.Definition{
	Resource: Resource,
	Filters: []listquery.Filter{
		{Name: FilterStatus, Options: sale.StatusOptions},
		{Name: FilterPeriod, Options: sale.PeriodOptions},
		{Name: FilterOnlyMine, Options: OnlyMineOptions},
	},
}

// Gateway is the upstream sales API
type Gateway interface {
	ListSales(ctx context.Context, key listquery.Key) (listquery.Page[sale.Sale], error)
}

// ListItem is one row of the sales list
type ListItem struct {
	sale.Sale
	Code            string `json:"code"`
	StatusLabel     string `json:"status_label"`
	AmountLabel     string `json:"amount_label"`
	HasDiscount     bool   `json:"has_discount"`
	DiscountPercent string `json:"discount_percent,omitempty"`
	UnitLabel       string `json:"unit_label"`
	CustomerLabel   string `json:"customer_label"`
	SellerLabel     string `json:"seller_label"`
}

func toListItem(s sale.Sale) ListItem {
	item := ListItem{
		Sale:          s,
		Code:          valueobject.FormatID(s.ID),
		StatusLabel:   shared.LabelOf(sale.StatusOptions, string(s.Status)),
		AmountLabel:   s.AmountLabel(),
		HasDiscount:   s.HasDiscount(),
		UnitLabel:     "—",
		CustomerLabel: "—",
		SellerLabel:   "—",
	}
	if item.HasDiscount {
		item.DiscountPercent = s.DiscountPercent()
	}
	if s.Unit != nil && s.Unit.Name != "" {
		item.UnitLabel = s.Unit.Name
		if s.Unit.Project != nil && s.Unit.Project.Name != "" {
			item.UnitLabel = s.Unit.Project.Name + " - " + s.Unit.Name
		}
	}
	if s.Customer != nil && s.Customer.FullName != "" {
		item.CustomerLabel = s.Customer.FullName
	}
	if s.User != nil {
		switch {
		case s.User.Name != "":
			item.SellerLabel = s.User.Name
		case s.User.Email != "":
			item.SellerLabel = s.User.Email
		}
	}
	return item
}

// Service serves the sales list
type Service struct {
	gateway    Gateway
	cache      listquery.Cache
	cacheScope func(ctx context.Context) string
	userID     func(ctx context.Context) string
	now        func() time.Time
	pageSize   int
	maxVisible int
}

// Option configures a Service
type Option func(*Service)

// WithCache serves list pages through cache, partitioned by scope
func WithCache(cache listquery.Cache, scope func(ctx context.Context) string) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheScope = scope
	}
}

// WithPaging sets the page size and the page-button window width
func WithPaging(pageSize, maxVisible int) Option {
	return func(s *Service) {
		s.pageSize = pageSize
		s.maxVisible = maxVisible
	}
}

// WithUser resolves the signed-in user for the "only my sales" toggle
func WithUser(fn func(ctx context.Context) string) Option {
	return func(s *Service) {
		s.userID = fn
	}
}

// WithTimeFunc overrides the clock the period filter counts back from
func WithTimeFunc(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service
func NewService(gateway Gateway, opts ...Option) *Service {
	s := &Service{
		gateway:    gateway,
		now:        time.Now,
		pageSize:   listquery.DefaultPageSize,
		maxVisible: listquery.DefaultMaxVisible,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns the filter choices of the sales list
func (s *Service) Options() map[string][]shared.Option {
	return map[string][]shared.Option{
		FilterStatus: sale.StatusOptions,
		FilterPeriod: sale.PeriodOptions,
	}
}

// List returns one page of sales for the query parameters q
func (s *Service) List(ctx context.Context, q url.Values) (*listquery.Result[ListItem], error) {
	state, err := ListDefinition.Parse(q, s.pageSize)
	if err != nil {
		return nil, err
	}

	cached := listquery.Cached(s.scopedCache(ctx), s.gateway.ListSales)
	fetch := func(ctx context.Context, key listquery.Key) (listquery.Page[sale.Sale], error) {
		return cached(ctx, s.upstreamKey(ctx, key))
	}
	res, err := listquery.Load(ctx, Resource, state, s.maxVisible, fetch)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, toListItem(it))
	}
	return &listquery.Result[ListItem]{
		Items:      items,
		Total:      res.Total,
		PageSize:   res.PageSize,
		HasFilters: res.HasFilters,
		Window:     res.Window,
	}, nil
}

// upstreamKey rewrites the client filters into the upstream parameters: the
// period becomes a creation date lower bound and the toggle becomes the
// user's id. Without a known user the toggle is dropped.
func (s *Service) upstreamKey(ctx context.Context, key listquery.Key) listquery.Key {
	filters := make(map[string]string, len(key.Filters))
	for name, v := range key.Filters {
		switch name {
		case FilterPeriod:
			if from, ok := sale.PeriodStart(v, s.now()); ok {
				filters["created_from"] = from.Format(time.DateOnly)
			}
		case FilterOnlyMine:
			if s.userID == nil {
				continue
			}
			if uid := s.userID(ctx); uid != "" {
				filters["user_id"] = uid
			}
		default:
			filters[name] = v
		}
	}
	key.Filters = filters
	return key
}

func (s *Service) scopedCache(ctx context.Context) listquery.Cache {
	if s.cache == nil || s.cacheScope == nil {
		return s.cache
	}
	return listquery.Scoped(s.cache, s.cacheScope(ctx))
}
