package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/constructpro/dashboard/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	group.Group("nested", "/nested").PATCH("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/test/nested/7", nil))
	assert.Equal(t, "7", w.Body.String())
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}

	NewRouter(engine).
		Register(NewDomainGroup("open", "/open").GET("", func(c *gin.Context) { c.Status(http.StatusOK) })).
		Register(NewDomainGroup("closed", "/closed").Use(deny).GET("", func(c *gin.Context) { c.Status(http.StatusOK) })).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/closed", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func testHandlers() Handlers {
	return Handlers{
		System:   handler.NewSystemHandler("test", "0.0.0"),
		Mask:     handler.NewMaskHandler(nil, nil, nil),
		Postal:   handler.NewPostalHandler(nil),
		List:     handler.NewListHandler(),
		Customer: handler.NewCustomerHandler(nil),
		Project:  handler.NewProjectHandler(nil),
		Unit:     handler.NewUnitHandler(nil),
		Session:  handler.NewSessionHandler(nil),
	}
}

func TestMount(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Mount(testHandlers()).Setup()

	routes := make(map[string]bool)
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/health",
		"POST /api/v1/masks/currency",
		"POST /api/v1/masks/area",
		"POST /api/v1/masks/document",
		"POST /api/v1/masks/cep",
		"POST /api/v1/masks/birth-date",
		"POST /api/v1/masks/phone",
		"GET /api/v1/postal-codes/:cep",
		"GET /api/v1/lists/:resource",
		"POST /api/v1/customers",
		"PATCH /api/v1/customers/:id",
		"POST /api/v1/projects",
		"PATCH /api/v1/projects/:id",
		"POST /api/v1/units",
		"PATCH /api/v1/units/:id",
		"GET /api/v1/preferences/theme",
		"PUT /api/v1/preferences/theme",
		"GET /api/v1/preferences/tenant",
		"PUT /api/v1/preferences/tenant",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestMount_AuthSkipsHealth(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	NewRouter(engine, WithAuth(deny)).Mount(testHandlers()).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lists/customers", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
