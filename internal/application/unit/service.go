// Package unit assembles, validates and submits unit forms and serves the
// unit list.
package unit

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/application/submission"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/unit"
)

// Resource is the upstream collection and cache namespace
const Resource = "units"

// Notification texts
const (
	MsgCreated      = "Unidade cadastrada com sucesso!"
	MsgCreateFailed = "Erro ao cadastrar unidade"
	MsgUpdated      = "Unidade atualizada com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar unidade"
)

var minArea = decimal.New(1, -2)

// ListDefinition is the unit list: search plus status and category filters
var ListDefinition = listquery.Definition{
	Resource: Resource,
	Filters: []listquery.Filter{
		{Name: "status", Options: unit.StatusOptions},
		{Name: "category", Options: unit.CategoryOptions},
	},
}

// Gateway is the upstream unit API. Projects are read to bound the floor.
type Gateway interface {
	ListUnits(ctx context.Context, key listquery.Key) (listquery.Page[unit.Unit], error)
	GetUnit(ctx context.Context, id int64) (*unit.Unit, error)
	CreateUnit(ctx context.Context, body any) (*unit.Unit, error)
	UpdateUnit(ctx context.Context, id int64, body any) (*unit.Unit, error)
	GetProject(ctx context.Context, id int64) (*project.Project, error)
}

// Validator checks tag rules and returns a *shared.ValidationError
type Validator interface {
	Struct(s any) error
}

// Service handles unit forms and lists
type Service struct {
	gateway     Gateway
	validator   Validator
	runner      *submission.Runner
	cache       listquery.Cache
	cacheScope  func(ctx context.Context) string
	pageSize    int
	maxVisible  int
	suggestions []string
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

// WithFeatureSuggestions replaces the built-in feature suggestions. An
// empty list keeps the built-in one.
func WithFeatureSuggestions(features []string) Option {
	return func(s *Service) {
		if len(features) > 0 {
			s.suggestions = features
		}
	}
}

// NewService creates a new Service
func NewService(gateway Gateway, validator Validator, runner *submission.Runner, opts ...Option) *Service {
	s := &Service{
		gateway:     gateway,
		validator:   validator,
		runner:      runner,
		pageSize:    listquery.DefaultPageSize,
		maxVisible:  listquery.DefaultMaxVisible,
		suggestions: unit.DefaultFeatures,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req and registers a new unit
func (s *Service) Create(ctx context.Context, req UnitRequest) (*unit.Unit, error) {
	if err := s.Validate(ctx, req); err != nil {
		return nil, err
	}
	body := buildPayload(req)
	return submission.Submit(ctx, s.runner, Resource+"/new",
		submission.Messages{Success: MsgCreated, Failure: MsgCreateFailed},
		func(ctx context.Context) (*unit.Unit, error) {
			return s.gateway.CreateUnit(ctx, body)
		},
		s.invalidate,
	)
}

// Update validates req and saves it over unit id
func (s *Service) Update(ctx context.Context, id int64, req UnitRequest) (*unit.Unit, error) {
	if err := s.Validate(ctx, req); err != nil {
		return nil, err
	}
	body := buildPayload(req)
	return submission.Submit(ctx, s.runner, Resource+"/"+strconv.FormatInt(id, 10),
		submission.Messages{Success: MsgUpdated, Failure: MsgUpdateFailed},
		func(ctx context.Context) (*unit.Unit, error) {
			return s.gateway.UpdateUnit(ctx, id, body)
		},
		s.invalidate,
	)
}

// Get returns one unit
func (s *Service) Get(ctx context.Context, id int64) (*unit.Unit, error) {
	return s.gateway.GetUnit(ctx, id)
}

// Edit returns the form values that prefill the edit screen of unit id
func (s *Service) Edit(ctx context.Context, id int64) (*UnitRequest, error) {
	u, err := s.gateway.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	values := FormValues(*u)
	return &values, nil
}

// Options returns the unit form choices
func (s *Service) Options() FormOptions {
	return FormOptions{
		Categories: unit.CategoryOptions,
		Features:   s.suggestions,
	}
}

// Suggestions returns the feature suggestions
func (s *Service) Suggestions() []string {
	return s.suggestions
}

// FloorOptions lists the floors selectable for a unit of project id
func (s *Service) FloorOptions(ctx context.Context, projectID int64) ([]project.FloorOption, error) {
	p, err := s.gateway.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return project.FloorOptions(p.FloorCount()), nil
}

// List returns one page of units for the query parameters q
func (s *Service) List(ctx context.Context, q url.Values) (*listquery.Result[UnitListItem], error) {
	state, err := ListDefinition.Parse(q, s.pageSize)
	if err != nil {
		return nil, err
	}
	fetch := listquery.Cached(s.scopedCache(ctx), s.gateway.ListUnits)
	res, err := listquery.Load(ctx, Resource, state, s.maxVisible, fetch)
	if err != nil {
		return nil, err
	}

	items := make([]UnitListItem, 0, len(res.Items))
	for _, u := range res.Items {
		items = append(items, toListItem(u))
	}
	return &listquery.Result[UnitListItem]{
		Items:      items,
		Total:      res.Total,
		PageSize:   res.PageSize,
		HasFilters: res.HasFilters,
		Window:     res.Window,
	}, nil
}

// Validate runs every field rule of req and collects the failures. A floor
// is checked against the project's floor count, which needs the project.
func (s *Service) Validate(ctx context.Context, req UnitRequest) error {
	verr := shared.NewValidationError()
	if err := s.validator.Struct(req); err != nil {
		var ve *shared.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for field, msg := range ve.Fields {
			verr.Add(field, msg)
		}
	}

	if req.ProjectID < 1 {
		verr.Add("project_id", "Empreendimento é obrigatório")
	}
	if !req.Area.Valid() {
		verr.Add("area", "Área é obrigatória")
	} else if req.Area.Decimal().LessThan(minArea) {
		verr.Add("area", "Área deve ser maior que zero")
	}
	if req.PriceCents < 1 {
		verr.Add("price_cents", "Preço deve ser maior que zero")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if req.Floor != nil {
		p, err := s.gateway.GetProject(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		if *req.Floor > p.FloorCount() {
			verr.Add("floor", "Andar inválido para o empreendimento")
		}
	}
	return verr.OrNil()
}

func (s *Service) scopedCache(ctx context.Context) listquery.Cache {
	if s.cache == nil || s.cacheScope == nil {
		return s.cache
	}
	return listquery.Scoped(s.cache, s.cacheScope(ctx))
}

func (s *Service) invalidate(ctx context.Context) {
	// stale pages still expire by TTL
	if err := listquery.Invalidate(ctx, s.scopedCache(ctx), Resource); err != nil {
		s.runner.Logger().Warn("Failed to invalidate list cache",
			zap.String("resource", Resource),
			zap.Error(err),
		)
	}
}
