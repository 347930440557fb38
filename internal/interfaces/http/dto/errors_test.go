package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeReadOnlyField, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeSubmitInFlight, http.StatusConflict},
		{ErrCodeNetwork, http.StatusBadGateway},
		{ErrCodeUpstream, http.StatusBadGateway},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.CodeNotFound, ErrCodeNotFound},
		{shared.CodeUnauthorized, ErrCodeUnauthorized},
		{shared.CodeNetwork, ErrCodeNetwork},
		{shared.CodeSubmitInFlight, ErrCodeSubmitInFlight},
		{shared.CodeReadOnlyField, ErrCodeReadOnlyField},
		// API codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryDomainCodeHasStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		t.Run(domainCode, func(t *testing.T) {
			_, ok := ErrorCodeHTTPStatus[apiCode]
			assert.True(t, ok, "code %s should be in ErrorCodeHTTPStatus", apiCode)
			assert.Contains(t, apiCode, "ERR_")
		})
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse(map[string]string{"phone": "Telefone inválido"}, "req-789")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Equal(t, "Telefone inválido", resp.Error.Fields["phone"])
}

func TestNewUnauthorizedResponseJSON(t *testing.T) {
	resp := NewUnauthorizedResponse("Sessão expirada", "/login", "req-1")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {"code": "ERR_UNAUTHORIZED", "message": "Sessão expirada", "request_id": "req-1", "redirect": "/login"}
	}`, string(data))
}

func TestWithNotification(t *testing.T) {
	resp := NewSuccessResponse(map[string]int{"id": 1}).WithNotification("success", "Cliente cadastrado com sucesso!")
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "success", resp.Notification.Type)

	resp = NewSuccessResponse(nil).WithNotification("success", "")
	assert.Nil(t, resp.Notification)
}
