// Package project assembles, validates and submits development forms and
// serves the development list.
package project

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/application/submission"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Resource is the upstream collection and cache namespace
const Resource = "projects"

// Notification texts
const (
	MsgCreated      = "Empreendimento cadastrado com sucesso!"
	MsgCreateFailed = "Erro ao cadastrar empreendimento"
	MsgUpdated      = "Empreendimento atualizado com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar empreendimento"
)

// ListDefinition is the project list: free search only
var ListDefinition = listquery.Definition{Resource: Resource}

// Gateway is the upstream project API
type Gateway interface {
	ListProjects(ctx context.Context, key listquery.Key) (listquery.Page[project.Project], error)
	GetProject(ctx context.Context, id int64) (*project.Project, error)
	CreateProject(ctx context.Context, body any) (*project.Project, error)
	UpdateProject(ctx context.Context, id int64, body any) (*project.Project, error)
}

// Validator checks tag rules and returns a *shared.ValidationError
type Validator interface {
	Struct(s any) error
}

// Service handles project forms and lists
type Service struct {
	gateway    Gateway
	validator  Validator
	runner     *submission.Runner
	cache      listquery.Cache
	cacheScope func(ctx context.Context) string
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

// NewService creates a new Service
func NewService(gateway Gateway, validator Validator, runner *submission.Runner, opts ...Option) *Service {
	s := &Service{
		gateway:    gateway,
		validator:  validator,
		runner:     runner,
		pageSize:   listquery.DefaultPageSize,
		maxVisible: listquery.DefaultMaxVisible,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req and registers a new development
func (s *Service) Create(ctx context.Context, req ProjectRequest) (*project.Project, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	body := buildPayload(req)
	return submission.Submit(ctx, s.runner, Resource+"/new",
		submission.Messages{Success: MsgCreated, Failure: MsgCreateFailed},
		func(ctx context.Context) (*project.Project, error) {
			return s.gateway.CreateProject(ctx, body)
		},
		s.invalidate,
	)
}

// Update validates req and saves it over development id
func (s *Service) Update(ctx context.Context, id int64, req ProjectRequest) (*project.Project, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	body := buildPayload(req)
	return submission.Submit(ctx, s.runner, Resource+"/"+strconv.FormatInt(id, 10),
		submission.Messages{Success: MsgUpdated, Failure: MsgUpdateFailed},
		func(ctx context.Context) (*project.Project, error) {
			return s.gateway.UpdateProject(ctx, id, body)
		},
		s.invalidate,
	)
}

// Get returns one development
func (s *Service) Get(ctx context.Context, id int64) (*project.Project, error) {
	return s.gateway.GetProject(ctx, id)
}

// Edit returns the form values that prefill the edit screen of development id
func (s *Service) Edit(ctx context.Context, id int64) (*ProjectRequest, error) {
	p, err := s.gateway.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	values := FormValues(*p)
	return &values, nil
}

// Options returns the project form choices
func (s *Service) Options() FormOptions {
	return FormOptions{
		Statuses: project.StatusOptions,
		Features: project.DefaultFeatures,
	}
}

// List returns one page of developments for the query parameters q
func (s *Service) List(ctx context.Context, q url.Values) (*listquery.Result[ProjectListItem], error) {
	state, err := ListDefinition.Parse(q, s.pageSize)
	if err != nil {
		return nil, err
	}
	fetch := listquery.Cached(s.scopedCache(ctx), s.gateway.ListProjects)
	res, err := listquery.Load(ctx, Resource, state, s.maxVisible, fetch)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectListItem, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, toListItem(p))
	}
	return &listquery.Result[ProjectListItem]{
		Items:      items,
		Total:      res.Total,
		PageSize:   res.PageSize,
		HasFilters: res.HasFilters,
		Window:     res.Window,
	}, nil
}

// Validate runs every field rule of req and collects the failures
func (s *Service) Validate(req ProjectRequest) error {
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
	if req.PostalCode != "" && !valueobject.IsCompleteCEP(req.PostalCode) {
		verr.Add("postal_code", "CEP inválido")
	}
	if req.Floors != "" {
		if n, err := strconv.Atoi(req.Floors); err != nil || n < 0 {
			verr.Add("floors", "Informe um número de andares")
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
