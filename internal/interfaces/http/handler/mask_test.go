package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/infrastructure/phone"
	"github.com/constructpro/dashboard/internal/interfaces/http/dto"
)

// MockPostalLookup is a mock implementation of address.Lookup
type MockPostalLookup struct {
	mock.Mock
}

func (m *MockPostalLookup) Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error) {
	args := m.Called(ctx, cep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valueobject.PostalAddress), args.Error(1)
}

var paulista = &valueobject.PostalAddress{
	PostalCode:   "01310100",
	State:        "SP",
	City:         "São Paulo",
	Neighborhood: "Bela Vista",
	Street:       "Avenida Paulista",
}

func setupMaskRouter(h *MaskHandler) *gin.Engine {
	r := gin.New()
	r.POST("/masks/currency", h.Currency)
	r.POST("/masks/area", h.Area)
	r.POST("/masks/document", h.Document)
	r.POST("/masks/cep", h.CEP)
	r.POST("/masks/birth-date", h.BirthDate)
	r.POST("/masks/phone", h.Phone)
	r.POST("/masks/features", h.Features)
	return r
}

// postJSON sends body to path and decodes the data payload into out
func postJSON(t *testing.T, r *gin.Engine, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		var resp struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return w
}

func TestMaskHandler_Currency(t *testing.T) {
	r := setupMaskRouter(NewMaskHandler(nil, nil, nil))

	var got CurrencyMaskResponse
	w := postJSON(t, r, http.MethodPost, "/masks/currency", MaskRequest{Value: "R$ 300,00"}, &got)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "300,00", got.Display)
	assert.Equal(t, int64(30000), got.Cents)

	w = postJSON(t, r, http.MethodPost, "/masks/currency", MaskRequest{Value: ""}, &got)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", got.Display)
	assert.Equal(t, int64(0), got.Cents)
}

func TestMaskHandler_Area(t *testing.T) {
	r := setupMaskRouter(NewMaskHandler(nil, nil, nil))

	var got AreaMaskResponse
	postJSON(t, r, http.MethodPost, "/masks/area", AreaMaskRequest{Value: "12,5"}, &got)
	assert.Equal(t, "12,5", got.Display)

	postJSON(t, r, http.MethodPost, "/masks/area", AreaMaskRequest{Value: "12,5", Blur: true}, &got)
	assert.Equal(t, "12,50", got.Display)
}

func TestMaskHandler_Document(t *testing.T) {
	r := setupMaskRouter(NewMaskHandler(nil, nil, nil))

	t.Run("masks and validates a CPF", func(t *testing.T) {
		var got DocumentMaskResponse
		w := postJSON(t, r, http.MethodPost, "/masks/document",
			DocumentMaskRequest{Value: "52998224725", Kind: "cpf"}, &got)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "529.982.247-25", got.Display)
		assert.Equal(t, "52998224725", got.Digits)
		assert.True(t, got.Complete)
		assert.True(t, got.Valid)
		assert.False(t, got.ReadOnly)
	})

	t.Run("partial input is incomplete", func(t *testing.T) {
		var got DocumentMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/document",
			DocumentMaskRequest{Value: "5299822", Kind: "cpf"}, &got)

		assert.Equal(t, "529.982.2", got.Display)
		assert.False(t, got.Complete)
	})

	t.Run("read-only when editing", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/masks/document",
			DocumentMaskRequest{Value: "00000000000000", Kind: "cnpj", Edit: true, Current: "11222333000181"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeReadOnlyField, resp.Error.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/masks/document",
			DocumentMaskRequest{Value: "1", Kind: "rg"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Fields, "kind")
	})
}

func TestMaskHandler_CEP(t *testing.T) {
	t.Run("fills the address block", func(t *testing.T) {
		lookup := new(MockPostalLookup)
		lookup.On("Lookup", mock.Anything, "01310100").Return(paulista, nil).Once()
		r := setupMaskRouter(NewMaskHandler(lookup, nil, nil))

		var got CEPMaskResponse
		w := postJSON(t, r, http.MethodPost, "/masks/cep", CEPMaskRequest{Value: "01310100"}, &got)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "01310-100", got.PostalCode)
		assert.Equal(t, "Avenida Paulista", got.Address)
		assert.Equal(t, "Bela Vista", got.Neighborhood)
		assert.Equal(t, "São Paulo", got.City)
		assert.Equal(t, "SP", got.State)
		assert.True(t, got.Domestic)
		assert.Equal(t, "idle", got.Lookup)
		lookup.AssertExpectations(t)
	})

	t.Run("failure keeps typed values", func(t *testing.T) {
		lookup := new(MockPostalLookup)
		lookup.On("Lookup", mock.Anything, "99999999").Return(nil, errors.New("not found")).Once()
		r := setupMaskRouter(NewMaskHandler(lookup, nil, nil))

		var got CEPMaskResponse
		w := postJSON(t, r, http.MethodPost, "/masks/cep", CEPMaskRequest{Value: "99999-999", City: "Olinda"}, &got)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Olinda", got.City)
		assert.Equal(t, "failed", got.Lookup)
	})

	t.Run("project form is always domestic", func(t *testing.T) {
		lookup := new(MockPostalLookup)
		lookup.On("Lookup", mock.Anything, "01310100").Return(paulista, nil).Once()
		r := setupMaskRouter(NewMaskHandler(lookup, nil, nil))

		var got CEPMaskResponse
		w := postJSON(t, r, http.MethodPost, "/masks/cep",
			CEPMaskRequest{Value: "01310100", Form: "projects", Country: "US"}, &got)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "01310-100", got.PostalCode)
		assert.Equal(t, "BR", got.Country)
		assert.Equal(t, "Bela Vista", got.Neighborhood)
		assert.Equal(t, "SP", got.State)
		assert.True(t, got.Domestic)
		lookup.AssertExpectations(t)
	})

	t.Run("customer form abroad is not looked up", func(t *testing.T) {
		lookup := new(MockPostalLookup)
		r := setupMaskRouter(NewMaskHandler(lookup, nil, nil))

		var got CEPMaskResponse
		w := postJSON(t, r, http.MethodPost, "/masks/cep",
			CEPMaskRequest{Value: "01310100", Form: "customers", Country: "US"}, &got)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "US", got.Country)
		assert.False(t, got.Domestic)
		lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("unknown form is rejected", func(t *testing.T) {
		r := setupMaskRouter(NewMaskHandler(new(MockPostalLookup), nil, nil))

		w := postJSON(t, r, http.MethodPost, "/masks/cep",
			CEPMaskRequest{Value: "01310100", Form: "sales"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete code is not looked up", func(t *testing.T) {
		lookup := new(MockPostalLookup)
		r := setupMaskRouter(NewMaskHandler(lookup, nil, nil))

		var got CEPMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/cep", CEPMaskRequest{Value: "0131"}, &got)

		assert.Equal(t, "0131", got.PostalCode)
		lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})
}

func TestMaskHandler_BirthDate(t *testing.T) {
	h := NewMaskHandler(nil, nil, nil)
	h.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	r := setupMaskRouter(h)

	tests := []struct {
		name    string
		value   string
		display string
		iso     string
		errMsg  string
	}{
		{"partial", "0102", "01/02", "", ""},
		{"valid", "01021985", "01/02/1985", "1985-02-01", ""},
		{"impossible date", "31022000", "31/02/2000", "2000-02-31", valueobject.ErrBirthDateInvalid.Error()},
		{"future date", "01013000", "01/01/3000", "3000-01-01", valueobject.ErrBirthDateInvalid.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got BirthDateMaskResponse
			postJSON(t, r, http.MethodPost, "/masks/birth-date", MaskRequest{Value: tt.value}, &got)

			assert.Equal(t, tt.display, got.Display)
			assert.Equal(t, tt.iso, got.ISO)
			assert.Equal(t, tt.errMsg, got.Error)
		})
	}
}

func TestMaskHandler_Phone(t *testing.T) {
	r := setupMaskRouter(NewMaskHandler(nil, phone.NewFormatter(), nil))

	t.Run("domestic number", func(t *testing.T) {
		var got PhoneMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/phone", PhoneMaskRequest{Value: "(11) 99999-9999", Country: "BR"}, &got)

		assert.Equal(t, "+5511999999999", got.E164)
		assert.Equal(t, "BR", got.Country)
		assert.Equal(t, "+55", got.CallingCode)
		assert.Empty(t, got.Error)
		assert.Contains(t, got.International, "+55")
	})

	t.Run("short number is flagged", func(t *testing.T) {
		var got PhoneMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/phone", PhoneMaskRequest{Value: "119", Country: "BR"}, &got)

		assert.Equal(t, "Telefone inválido", got.Error)
		assert.Empty(t, got.International)
	})
}

func TestMaskHandler_Features(t *testing.T) {
	features := map[string][]string{
		"units": {"Academia", "Piscina", "Piscina Privativa"},
	}
	r := setupMaskRouter(NewMaskHandler(nil, nil, features))

	t.Run("suggestions exclude selected tags", func(t *testing.T) {
		var got FeaturesMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/features",
			FeaturesMaskRequest{Form: "units", Selected: []string{"Piscina"}, Typed: "pisc"}, &got)

		assert.Equal(t, []string{"Piscina"}, got.Tags)
		assert.Equal(t, []string{"Piscina Privativa"}, got.Suggestions)
	})

	t.Run("add is idempotent", func(t *testing.T) {
		var got FeaturesMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/features",
			FeaturesMaskRequest{Form: "units", Selected: []string{"Piscina"}, Add: "Piscina"}, &got)

		assert.Equal(t, []string{"Piscina"}, got.Tags)
	})

	t.Run("enter adds the typed text", func(t *testing.T) {
		var got FeaturesMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/features",
			FeaturesMaskRequest{Form: "units", Typed: "Heliponto", Key: "enter"}, &got)

		assert.Equal(t, []string{"Heliponto"}, got.Tags)
		assert.Equal(t, "", got.Typed)
	})

	t.Run("backspace pops the last tag", func(t *testing.T) {
		var got FeaturesMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/features",
			FeaturesMaskRequest{Form: "units", Selected: []string{"A", "B"}, Key: "backspace"}, &got)

		assert.Equal(t, []string{"A"}, got.Tags)
	})

	t.Run("unknown text offers a custom option", func(t *testing.T) {
		var got FeaturesMaskResponse
		postJSON(t, r, http.MethodPost, "/masks/features",
			FeaturesMaskRequest{Form: "units", Typed: "Heliponto"}, &got)

		assert.Equal(t, "Heliponto", got.CustomOption)
	})

	t.Run("unknown form", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/masks/features", FeaturesMaskRequest{Form: "offices"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
