package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customerapp "github.com/constructpro/dashboard/internal/application/customer"
	"github.com/constructpro/dashboard/internal/domain/customer"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/interfaces/http/dto"
)

// MockCustomerService is a mock implementation of CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, req customerapp.CustomerRequest) (*customer.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id int64, req customerapp.CustomerRequest) (*customer.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Edit(ctx context.Context, id int64) (*customerapp.CustomerRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customerapp.CustomerRequest), args.Error(1)
}

func setupCustomerRouter(svc CustomerService) *gin.Engine {
	h := NewCustomerHandler(svc)
	r := gin.New()
	r.POST("/customers", h.Create)
	r.GET("/customers/:id", h.GetByID)
	r.PATCH("/customers/:id", h.Update)
	r.GET("/customers/:id/form", h.FormValues)
	return r
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req customerapp.CustomerRequest) bool {
			return req.FullName == "Ana Souza" && req.CPFCNPJ == "529.982.247-25"
		})).Return(&customer.Customer{ID: 1, FullName: "Ana Souza"}, nil)

		w := postJSON(t, setupCustomerRouter(svc), http.MethodPost, "/customers", customerapp.CustomerRequest{
			Type:     "individual",
			FullName: "Ana Souza",
			CPFCNPJ:  "529.982.247-25",
			Phone:    "+5511999999999",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"full_name":"Ana Souza"`)
		svc.AssertExpectations(t)
	})

	t.Run("tag failures reach the service", func(t *testing.T) {
		verr := shared.NewValidationError()
		verr.Add("full_name", "Nome é obrigatório")
		verr.Add("cpf_cnpj", "CPF inválido")

		svc := new(MockCustomerService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, verr)

		w := postJSON(t, setupCustomerRouter(svc), http.MethodPost, "/customers",
			map[string]string{"type": "individual", "cpf_cnpj": "111"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Len(t, resp.Error.Fields, 2)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockCustomerService)
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupCustomerRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate submit", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, shared.ErrSubmitInFlight)

		w := postJSON(t, setupCustomerRouter(svc), http.MethodPost, "/customers",
			customerapp.CustomerRequest{Type: "individual", FullName: "Ana Souza"}, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCustomerHandler_Update(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("Update", mock.Anything, int64(5), mock.Anything).Return(&customer.Customer{ID: 5}, nil)

		w := postJSON(t, setupCustomerRouter(svc), http.MethodPatch, "/customers/5",
			customerapp.CustomerRequest{Type: "individual", FullName: "Ana Souza"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockCustomerService)
		w := postJSON(t, setupCustomerRouter(svc), http.MethodPatch, "/customers/abc",
			customerapp.CustomerRequest{}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired session", func(t *testing.T) {
		svc := new(MockCustomerService)
		svc.On("Update", mock.Anything, int64(5), mock.Anything).Return(nil, shared.ErrUnauthorized)

		w := postJSON(t, setupCustomerRouter(svc), http.MethodPatch, "/customers/5",
			customerapp.CustomerRequest{Type: "individual", FullName: "Ana Souza"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "/login", resp.Error.Redirect)
	})
}

func TestCustomerHandler_GetByID(t *testing.T) {
	svc := new(MockCustomerService)
	svc.On("Get", mock.Anything, int64(9)).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	setupCustomerRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers/9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_FormValues(t *testing.T) {
	svc := new(MockCustomerService)
	svc.On("Edit", mock.Anything, int64(3)).Return(&customerapp.CustomerRequest{FullName: "Ana Souza", Birthday: "15/03/1990"}, nil)

	w := httptest.NewRecorder()
	setupCustomerRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers/3/form", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"birthday":"15/03/1990"`)
}
