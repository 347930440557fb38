package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
)

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing("dashboard-test", provider))
	router.Use(SpanAttributes())
	return router, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_RecordsRequestSpan(t *testing.T) {
	router, recorder := newTracedRouter(t)
	var handlerSpan trace.SpanContext
	router.GET("/customers/:id", func(c *gin.Context) {
		handlerSpan = trace.SpanContextFromContext(c.Request.Context())
		c.Set(PrincipalKey, &identity.Principal{UserID: "u-1"})
		c.Set(TenantIDKey, "t-1")
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers/42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.True(t, handlerSpan.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), handlerSpan.TraceID())
	assert.NotEqual(t, codes.Error, span.Status().Code)

	requestID, ok := spanAttr(span, "request_id")
	require.True(t, ok)
	assert.Equal(t, w.Header().Get(RequestIDHeader), requestID.AsString())
	userID, _ := spanAttr(span, "user_id")
	assert.Equal(t, "u-1", userID.AsString())
	tenantID, _ := spanAttr(span, "tenant_id")
	assert.Equal(t, "t-1", tenantID.AsString())
}

func TestTracing_MarksErrorResponses(t *testing.T) {
	router, recorder := newTracedRouter(t)
	router.GET("/lists/customers", func(c *gin.Context) {
		_ = c.Error(shared.ErrUnauthorized)
		c.Status(http.StatusUnauthorized)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lists/customers", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	msg, ok := spanAttr(spans[0], "error.message")
	require.True(t, ok)
	assert.Equal(t, shared.ErrUnauthorized.Error(), msg.AsString())
}

func TestSpanAttributes_NoSpan(t *testing.T) {
	router := gin.New()
	router.Use(Tracing("dashboard-test", noop.NewTracerProvider()))
	router.Use(SpanAttributes())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
