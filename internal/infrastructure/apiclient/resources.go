package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/domain/customer"
	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/sale"
	"github.com/constructpro/dashboard/internal/domain/unit"
)

// Upstream resource paths
const (
	ResourceCustomers = "customers"
	ResourceProjects  = "projects"
	ResourceUnits     = "units"
	ResourceSales     = "sales"
)

func list[T any](ctx context.Context, c *Client, resource string, key listquery.Key) (listquery.Page[T], error) {
	var page listquery.Page[T]
	if err := c.do(ctx, http.MethodGet, "/"+resource, key.Query(), nil, &page); err != nil {
		return listquery.Page[T]{}, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func get[T any](ctx context.Context, c *Client, resource string, id int64) (*T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, "/"+resource+"/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, c *Client, resource string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, http.MethodPost, "/"+resource, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func update[T any](ctx context.Context, c *Client, resource string, id int64, body any) (*T, error) {
	var out T
	if err := c.do(ctx, http.MethodPatch, "/"+resource+"/"+strconv.FormatInt(id, 10), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomers fetches one page of customers
func (c *Client) ListCustomers(ctx context.Context, key listquery.Key) (listquery.Page[customer.Customer], error) {
	return list[customer.Customer](ctx, c, ResourceCustomers, key)
}

// GetCustomer fetches one customer
func (c *Client) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return get[customer.Customer](ctx, c, ResourceCustomers, id)
}

// CreateCustomer posts a new customer
func (c *Client) CreateCustomer(ctx context.Context, body any) (*customer.Customer, error) {
	return create[customer.Customer](ctx, c, ResourceCustomers, body)
}

// UpdateCustomer patches a customer
func (c *Client) UpdateCustomer(ctx context.Context, id int64, body any) (*customer.Customer, error) {
	return update[customer.Customer](ctx, c, ResourceCustomers, id, body)
}

// ListProjects fetches one page of projects
func (c *Client) ListProjects(ctx context.Context, key listquery.Key) (listquery.Page[project.Project], error) {
	return list[project.Project](ctx, c, ResourceProjects, key)
}

// GetProject fetches one project
func (c *Client) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	return get[project.Project](ctx, c, ResourceProjects, id)
}

// CreateProject posts a new project
func (c *Client) CreateProject(ctx context.Context, body any) (*project.Project, error) {
	return create[project.Project](ctx, c, ResourceProjects, body)
}

// UpdateProject patches a project
func (c *Client) UpdateProject(ctx context.Context, id int64, body any) (*project.Project, error) {
	return update[project.Project](ctx, c, ResourceProjects, id, body)
}

// ListUnits fetches one page of units
func (c *Client) ListUnits(ctx context.Context, key listquery.Key) (listquery.Page[unit.Unit], error) {
	return list[unit.Unit](ctx, c, ResourceUnits, key)
}

// GetUnit fetches one unit
func (c *Client) GetUnit(ctx context.Context, id int64) (*unit.Unit, error) {
	return get[unit.Unit](ctx, c, ResourceUnits, id)
}

// CreateUnit posts a new unit
func (c *Client) CreateUnit(ctx context.Context, body any) (*unit.Unit, error) {
	return create[unit.Unit](ctx, c, ResourceUnits, body)
}

// UpdateUnit patches a unit
func (c *Client) UpdateUnit(ctx context.Context, id int64, body any) (*unit.Unit, error) {
	return update[unit.Unit](ctx, c, ResourceUnits, id, body)
}

// ListSales fetches one page of sales
func (c *Client) ListSales(ctx context.Context, key listquery.Key) (listquery.Page[sale.Sale], error) {
	return list[sale.Sale](ctx, c, ResourceSales, key)
}

// Me fetches the signed-in user's profile and tenants
func (c *Client) Me(ctx context.Context) (*identity.Profile, error) {
	var out identity.Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
