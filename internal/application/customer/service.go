// Package customer assembles, validates and submits customer forms and
// serves the customer list.
package customer

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/application/submission"
	"github.com/constructpro/dashboard/internal/domain/customer"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Resource is the upstream collection and cache namespace
const Resource = "customers"

// Notification texts
const (
	MsgCreated      = "Cliente cadastrado com sucesso!"
	MsgCreateFailed = "Erro ao cadastrar cliente"
	MsgUpdated      = "Cliente atualizado com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar cliente"
)

// ListDefinition is the customer list: free search plus a type filter
var ListDefinition = listquery.Definition{
	Resource: Resource,
	Filters: []listquery.Filter{
		{Name: "type", Options: customer.TypeOptions},
	},
}

// Gateway is the upstream customer API
type Gateway interface {
	ListCustomers(ctx context.Context, key listquery.Key) (listquery.Page[customer.Customer], error)
	GetCustomer(ctx context.Context, id int64) (*customer.Customer, error)
	CreateCustomer(ctx context.Context, body any) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, body any) (*customer.Customer, error)
}

// Validator checks tag rules and returns a *shared.ValidationError
type Validator interface {
	Struct(s any) error
}

// PostalLookup resolves a complete domestic postal code
type PostalLookup interface {
	Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error)
}

// Service handles customer forms and lists
type Service struct {
	gateway    Gateway
	validator  Validator
	runner     *submission.Runner
	postal     PostalLookup
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

// WithPostalLookup re-derives city and state of domestic addresses from the
// postal code on submit. When the lookup fails the submitted values are kept.
func WithPostalLookup(l PostalLookup) Option {
	return func(s *Service) {
		s.postal = l
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

// Create validates req and registers a new customer
func (s *Service) Create(ctx context.Context, req CustomerRequest) (*customer.Customer, error) {
	if err := s.Validate(req, false); err != nil {
		return nil, err
	}
	body := buildPayload(s.resolveAddress(ctx, req), false)
	return submission.Submit(ctx, s.runner, Resource+"/new",
		submission.Messages{Success: MsgCreated, Failure: MsgCreateFailed},
		func(ctx context.Context) (*customer.Customer, error) {
			return s.gateway.CreateCustomer(ctx, body)
		},
		s.invalidate,
	)
}

// Update validates req and saves it over customer id. The document is
// fixed at registration and is never sent.
func (s *Service) Update(ctx context.Context, id int64, req CustomerRequest) (*customer.Customer, error) {
	if err := s.Validate(req, true); err != nil {
		return nil, err
	}
	body := buildPayload(s.resolveAddress(ctx, req), true)
	return submission.Submit(ctx, s.runner, Resource+"/"+strconv.FormatInt(id, 10),
		submission.Messages{Success: MsgUpdated, Failure: MsgUpdateFailed},
		func(ctx context.Context) (*customer.Customer, error) {
			return s.gateway.UpdateCustomer(ctx, id, body)
		},
		s.invalidate,
	)
}

// Get returns one customer
func (s *Service) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.gateway.GetCustomer(ctx, id)
}

// Edit returns the form values that prefill the edit screen of customer id
func (s *Service) Edit(ctx context.Context, id int64) (*CustomerRequest, error) {
	c, err := s.gateway.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	values := FormValues(*c)
	return &values, nil
}

// List returns one page of customers for the query parameters q
func (s *Service) List(ctx context.Context, q url.Values) (*listquery.Result[CustomerListItem], error) {
	state, err := ListDefinition.Parse(q, s.pageSize)
	if err != nil {
		return nil, err
	}
	fetch := listquery.Cached(s.scopedCache(ctx), s.gateway.ListCustomers)
	res, err := listquery.Load(ctx, Resource, state, s.maxVisible, fetch)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerListItem, 0, len(res.Items))
	for _, c := range res.Items {
		items = append(items, toListItem(c))
	}
	return &listquery.Result[CustomerListItem]{
		Items:      items,
		Total:      res.Total,
		PageSize:   res.PageSize,
		HasFilters: res.HasFilters,
		Window:     res.Window,
	}, nil
}

// Validate runs every field rule of req and collects the failures. In edit
// mode the document is read-only and is not checked.
func (s *Service) Validate(req CustomerRequest, editing bool) error {
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

	kind := req.CustomerType().DocumentKind()
	if !editing {
		switch {
		case strings.TrimSpace(req.CPFCNPJ) == "":
			verr.Add("cpf_cnpj", "Campo obrigatório")
		case !valueobject.ValidDocument(kind, req.CPFCNPJ):
			verr.Add("cpf_cnpj", kind.Label()+" inválido")
		}
	}

	if req.CustomerType() == customer.TypeCompany && strings.TrimSpace(req.LegalName) == "" {
		verr.Add("legal_name", "Campo obrigatório")
	}
	if req.MaritalStatus != "" && !shared.HasValue(customer.MaritalStatusOptions, req.MaritalStatus) {
		verr.Add("marital_status", "Valor inválido")
	}
	if req.PostalCode != "" && valueobject.IsDomesticCountry(req.Country) && !valueobject.IsCompleteCEP(req.PostalCode) {
		verr.Add("postal_code", "CEP inválido")
	}
	return verr.OrNil()
}

func buildPayload(req CustomerRequest, editing bool) customerPayload {
	p := customerPayload{
		Type:          req.Type,
		FullName:      strings.TrimSpace(req.FullName),
		Email:         nullable(req.Email),
		Phone:         req.Phone,
		Address:       nullable(req.Address),
		AddressNumber: nullable(req.AddressNumber),
		Neighborhood:  nullable(req.Neighborhood),
		City:          nullable(req.City),
		State:         nullable(req.State),
		PostalCode:    nullable(req.PostalCode),
		Complement:    nullable(req.Complement),
		Country:       strings.ToUpper(strings.TrimSpace(req.Country)),
	}
	if !editing {
		p.CPFCNPJ = valueobject.OnlyDigits(req.CPFCNPJ)
	}

	switch req.CustomerType() {
	case customer.TypeCompany:
		p.LegalName = nullable(req.LegalName)
	default:
		p.FullName = valueobject.CapitalizeNameBR(p.FullName)
		if iso, ok := valueobject.ParseBirthDateToISO(req.Birthday); ok {
			p.Birthday = &iso
		}
		p.Gender = nullable(req.Gender)
		p.MaritalStatus = nullable(req.MaritalStatus)
		p.RG = nullable(req.RG)
		p.RGIssuer = nullable(req.RGIssuer)
		p.RGIssueState = nullable(strings.ToUpper(req.RGIssueState))
	}
	return p
}

// resolveAddress replaces the read-only city and state of a domestic
// address with the ones its postal code resolves to
func (s *Service) resolveAddress(ctx context.Context, req CustomerRequest) CustomerRequest {
	if s.postal == nil || !valueobject.IsDomesticCountry(req.Country) || !valueobject.IsCompleteCEP(req.PostalCode) {
		return req
	}
	addr, err := s.postal.Lookup(ctx, valueobject.OnlyDigits(req.PostalCode))
	if err != nil || addr == nil {
		s.runner.Logger().Debug("Postal lookup failed, keeping submitted city and state",
			zap.String("cep", req.PostalCode),
			zap.Error(err),
		)
		return req
	}
	if addr.City != "" {
		req.City = addr.City
	}
	if addr.State != "" {
		req.State = addr.State
	}
	return req
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

func labelOf(t customer.Type) string {
	return shared.LabelOf(customer.TypeOptions, string(t))
}
