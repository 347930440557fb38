package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/application/session"
	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/apiclient"
	"github.com/constructpro/dashboard/internal/interfaces/http/middleware"
)

var statusFilter = listquery.Filter{
	Name: "status",
	Options: []shared.Option{
		{Value: "launch", Label: "Lançamento"},
		{Value: "ready", Label: "Pronto"},
	},
}

func setupListRouter(sources ...ListSource) *gin.Engine {
	h := NewListHandler(sources...)
	r := gin.New()
	r.GET("/lists/:resource", h.List)
	r.GET("/lists/:resource/filters", h.Filters)
	return r
}

func TestListHandler_List(t *testing.T) {
	def := listquery.Definition{Resource: "projects", Filters: []listquery.Filter{statusFilter}}

	var seen url.Values
	src := ListSource{
		Definition: def,
		Load: ListOf(func(ctx context.Context, q url.Values) (*listquery.Result[string], error) {
			seen = q
			if _, err := def.Parse(q, 10); err != nil {
				return nil, err
			}
			return &listquery.Result[string]{Items: []string{"Residencial Aurora"}, Total: 1, PageSize: 10}, nil
		}),
	}
	r := setupListRouter(src)

	t.Run("passes the query through", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lists/projects?search=aurora&status=launch&page=2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "aurora", seen.Get("search"))
		assert.Equal(t, "2", seen.Get("page"))

		var resp struct {
			Data listquery.Result[string] `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Residencial Aurora"}, resp.Data.Items)
		assert.Equal(t, 1, resp.Data.Total)
	})

	t.Run("invalid option", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lists/projects?status=demolished", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Opção inválida", resp.Error.Fields["status"])
	})

	t.Run("unknown list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lists/invoices", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListHandler_Filters(t *testing.T) {
	r := setupListRouter(ListSource{
		Definition: listquery.Definition{Resource: "projects", Filters: []listquery.Filter{statusFilter, {Name: "city"}}},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lists/projects/filters", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []FilterInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "status", resp.Data[0].Name)
	assert.Len(t, resp.Data[0].Options, 2)
	assert.Equal(t, "city", resp.Data[1].Name)
	assert.Empty(t, resp.Data[1].Options)
}

func TestListHandler_Resources(t *testing.T) {
	h := NewListHandler(
		ListSource{Definition: listquery.Definition{Resource: "units"}},
		ListSource{Definition: listquery.Definition{Resource: "customers"}},
	)
	assert.Equal(t, []string{"customers", "units"}, h.Resources())
}

// revokingAuth accepts any token it has not revoked and revokes the
// caller's token when signed out
type revokingAuth struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (a *revokingAuth) Authenticate(_ context.Context, header string) (*identity.Principal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.revoked[header] {
		return nil, shared.ErrUnauthorized
	}
	return &identity.Principal{UserID: "u-1", Token: header}, nil
}

func (a *revokingAuth) ActiveTenant(context.Context, *identity.Principal) (string, error) {
	return "t-1", nil
}

func (a *revokingAuth) OnUnauthorized(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[session.PrincipalFrom(ctx).Token] = true
}

func TestListHandler_UpstreamUnauthorizedSignsOut(t *testing.T) {
	auth := &revokingAuth{revoked: map[string]bool{}}
	loads := 0
	h := NewListHandler(ListSource{
		Definition: listquery.Definition{Resource: "customers"},
		Load: ListOf(func(context.Context, url.Values) (*listquery.Result[string], error) {
			loads++
			return nil, &apiclient.APIError{StatusCode: http.StatusUnauthorized, Detail: "token expired"}
		}),
	})
	r := gin.New()
	r.Use(middleware.Session(auth, nil))
	r.GET("/lists/:resource", h.List)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/lists/customers", nil)
		req.Header.Set(middleware.AuthHeaderKey, "Bearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get()
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, session.LoginPath, resp.Error.Redirect)
	assert.True(t, auth.revoked["Bearer abc"])

	// the revoked token no longer reaches the upstream
	w = get()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, loads)
}
