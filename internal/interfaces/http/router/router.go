// Package router mounts the dashboard's handlers under /api/<version>.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Handlers are the endpoint groups of the BFF
type Handlers struct {
	System   *handler.SystemHandler
	Mask     *handler.MaskHandler
	Postal   *handler.PostalHandler
	List     *handler.ListHandler
	Customer *handler.CustomerHandler
	Project  *handler.ProjectHandler
	Unit     *handler.UnitHandler
	Session  *handler.SessionHandler
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	auth       []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuth sets the middleware guarding every route but /health
func WithAuth(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.auth = mw
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Mount registers the dashboard's endpoint groups
func (r *Router) Mount(h Handlers) *Router {
	r.Register(NewDomainGroup("system", "").
		GET("/health", h.System.Health))

	r.Register(NewDomainGroup("masks", "/masks").Use(r.auth...).
		POST("/currency", h.Mask.Currency).
		POST("/area", h.Mask.Area).
		POST("/document", h.Mask.Document).
		POST("/cep", h.Mask.CEP).
		POST("/birth-date", h.Mask.BirthDate).
		POST("/phone", h.Mask.Phone).
		POST("/features", h.Mask.Features))

	r.Register(NewDomainGroup("postal-codes", "/postal-codes").Use(r.auth...).
		GET("/:cep", h.Postal.Lookup))

	r.Register(NewDomainGroup("lists", "/lists").Use(r.auth...).
		GET("/:resource", h.List.List).
		GET("/:resource/filters", h.List.Filters))

	r.Register(NewDomainGroup("customers", "/customers").Use(r.auth...).
		POST("", h.Customer.Create).
		GET("/:id", h.Customer.GetByID).
		PATCH("/:id", h.Customer.Update).
		GET("/:id/form", h.Customer.FormValues))

	r.Register(NewDomainGroup("projects", "/projects").Use(r.auth...).
		POST("", h.Project.Create).
		GET("/options", h.Project.Options).
		GET("/:id", h.Project.GetByID).
		PATCH("/:id", h.Project.Update).
		GET("/:id/form", h.Project.FormValues))

	r.Register(NewDomainGroup("units", "/units").Use(r.auth...).
		POST("", h.Unit.Create).
		GET("/options", h.Unit.Options).
		GET("/floors", h.Unit.FloorOptions).
		GET("/:id", h.Unit.GetByID).
		PATCH("/:id", h.Unit.Update).
		GET("/:id/form", h.Unit.FormValues))

	r.Register(NewDomainGroup("session", "/session").Use(r.auth...).
		GET("", h.Session.Bootstrap).
		DELETE("", h.Session.SignOut))

	r.Register(NewDomainGroup("preferences", "/preferences").Use(r.auth...).
		GET("/theme", h.Session.GetTheme).
		PUT("/theme", h.Session.SetTheme).
		GET("/tenant", h.Session.GetTenant).
		PUT("/tenant", h.Session.SetTenant))

	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle registers a route for method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, handlers...)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
