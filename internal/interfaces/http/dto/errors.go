package dto

import (
	"net/http"

	"github.com/constructpro/dashboard/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON   = "ERR_INVALID_JSON"
	ErrCodeReadOnlyField = "ERR_READ_ONLY_FIELD"
	ErrCodeDerivedField  = "ERR_DERIVED_FIELD"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when the session is missing, revoked or
	// rejected upstream
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// Resource error codes
const (
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeSubmitInFlight is used when the same form is already being sent
	ErrCodeSubmitInFlight = "ERR_SUBMIT_IN_FLIGHT"
)

// Upstream error codes
const (
	// ErrCodeNetwork is used when the upstream API could not be reached
	ErrCodeNetwork = "ERR_NETWORK"
	// ErrCodeUpstream is used when the upstream API rejected the request
	ErrCodeUpstream = "ERR_UPSTREAM"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeReadOnlyField: http.StatusBadRequest,
	ErrCodeDerivedField:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,

	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeSubmitInFlight: http.StatusConflict,

	ErrCodeNetwork:  http.StatusBadGateway,
	ErrCodeUpstream: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps shared.DomainError codes to API codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeValidation:     ErrCodeValidation,
	shared.CodeNetwork:        ErrCodeNetwork,
	shared.CodeUpstream:       ErrCodeUpstream,
	shared.CodeUnauthorized:   ErrCodeUnauthorized,
	shared.CodeNotFound:       ErrCodeNotFound,
	shared.CodeInvalidInput:   ErrCodeInvalidInput,
	shared.CodeReadOnlyField:  ErrCodeReadOnlyField,
	shared.CodeDerivedField:   ErrCodeDerivedField,
	shared.CodeSubmitInFlight: ErrCodeSubmitInFlight,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
