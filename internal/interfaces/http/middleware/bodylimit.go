package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/interfaces/http/dto"
)

// ErrCodeRequestTooLarge is returned for bodies over the limit
const ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				ErrCodeRequestTooLarge,
				"Requisição excede o tamanho máximo permitido",
				c.GetString(RequestIDKey),
			))
			return
		}

		// chunked bodies have no Content-Length
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
