package dto

// Response represents a standard API response
type Response struct {
	Success      bool          `json:"success"`
	Data         any           `json:"data,omitempty"`
	Error        *ErrorInfo    `json:"error,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	// Redirect tells the client where to go, e.g. "/login" after a 401
	Redirect string `json:"redirect,omitempty"`
}

// Notification is the transient message the client shows after an action
type Notification struct {
	Type    string `json:"type"` // success, error
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the
// request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 body with field messages
func NewValidationErrorResponse(fields map[string]string, requestID string) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, "Verifique os campos destacados", requestID)
	resp.Error.Fields = fields
	return resp
}

// NewUnauthorizedResponse creates a 401 body that sends the client to
// redirect
func NewUnauthorizedResponse(message, redirect, requestID string) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeUnauthorized, message, requestID)
	resp.Error.Redirect = redirect
	return resp
}

// WithNotification attaches the message the client should show
func (r Response) WithNotification(kind, message string) Response {
	if message == "" {
		return r
	}
	r.Notification = &Notification{Type: kind, Message: message}
	return r
}
