package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/application/session"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
	"github.com/constructpro/dashboard/internal/interfaces/http/dto"
	"github.com/constructpro/dashboard/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// withNotification attaches the latest message of the request's notifier
func withNotification(c *gin.Context, resp dto.Response) dto.Response {
	n := middleware.GetNotifications(c)
	if n == nil {
		return resp
	}
	msg, isErr := n.Last()
	if isErr {
		return resp.WithNotification("error", msg)
	}
	return resp.WithNotification("success", msg)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, withNotification(c, dto.NewSuccessResponse(data)))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, withNotification(c, dto.NewSuccessResponse(data)))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, withNotification(c, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c))))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InvalidJSON sends a 400 response for a body that could not be decoded
func (h *BaseHandler) InvalidJSON(c *gin.Context) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Corpo da requisição inválido")
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 that tells the client to sign in again
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedResponse(
		shared.ErrUnauthorized.Message, session.LoginPath, getRequestID(c)))
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with field messages
func (h *BaseHandler) ValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(fields, getRequestID(c)))
}

// HandleError converts application errors to HTTP responses. An upstream
// 401 becomes a 401 with a redirect to the sign-in page; other upstream
// failures become 502 with the message the user was notified with.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		h.ValidationError(c, verr.Fields)
		return
	}
	if shared.IsUnauthorized(err) {
		h.Unauthorized(c)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, shared.UserMessage(err, domainErr.Message))
		return
	}

	if msg := shared.UserMessage(err, ""); msg != "" {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, msg)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error")
	h.InternalError(c, "Ocorreu um erro inesperado")
}

// parseID reads a positive numeric :id path parameter
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
