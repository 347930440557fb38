package shared

import (
	"errors"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error taxonomy codes
const (
	CodeValidation     = "VALIDATION"
	CodeNetwork        = "NETWORK"
	CodeUpstream       = "UPSTREAM"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeReadOnlyField  = "READ_ONLY_FIELD"
	CodeDerivedField   = "DERIVED_FIELD"
	CodeSubmitInFlight = "SUBMIT_IN_FLIGHT"
)

// Common domain errors
var (
	ErrNotFound       = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput   = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized   = NewDomainError(CodeUnauthorized, "Sessão expirada, faça login novamente")
	ErrNetwork        = NewDomainError(CodeNetwork, "Falha de comunicação com o servidor")
	ErrUpstream       = NewDomainError(CodeUpstream, "Não foi possível concluir a operação")
	ErrReadOnlyField  = NewDomainError(CodeReadOnlyField, "Campo não pode ser alterado após o cadastro")
	ErrDerivedField   = NewDomainError(CodeDerivedField, "Campo preenchido pelo CEP")
	ErrSubmitInFlight = NewDomainError(CodeSubmitInFlight, "Envio já em andamento")
)

// ValidationError holds field-scoped messages produced before anything is sent
// to the network.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field, keeping the first message reported.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries field-scoped validation failures
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUnauthorized reports whether err should force a sign-out
func IsUnauthorized(err error) bool {
	return HasCode(err, CodeUnauthorized)
}

// HasCode reports whether err wraps a DomainError with the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// UserMessage returns the message an error carries for the user, such as an
// upstream "detail", or fallback when it carries none.
func UserMessage(err error, fallback string) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
