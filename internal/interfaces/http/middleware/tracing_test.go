package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/indolink/backend/internal/domain/identity"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func TestTracingDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false, ServiceName: "test-service"}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTracingCreatesSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.GET("/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, findSpan(sr.Ended(), "GET /products/:id"), "HTTP span not found")
}

func TestTracingAttributeInjectorRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.Use(TracingAttributeInjector())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr.Ended(), "GET /test")
	require.NotNil(t, span)

	found := false
	for _, attr := range span.Attributes() {
		if attr.Key == "request_id" {
			assert.Equal(t, "req-abc-123", attr.Value.AsString())
			found = true
		}
	}
	assert.True(t, found, "request_id attribute not found in span")
}

func TestTracingAttributeInjectorActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupTestTracer(t)

	actorID := uuid.New()

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.Use(func(c *gin.Context) {
		c.Set(ActorKey, identity.Actor{ID: actorID, Role: identity.RoleBuyer})
		c.Next()
	})
	router.Use(TracingAttributeInjector())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr.Ended(), "GET /test")
	require.NotNil(t, span)

	userIDFound := false
	roleFound := false
	for _, attr := range span.Attributes() {
		switch attr.Key {
		case "user_id":
			assert.Equal(t, actorID.String(), attr.Value.AsString())
			userIDFound = true
		case "user_role":
			assert.Equal(t, string(identity.RoleBuyer), attr.Value.AsString())
			roleFound = true
		}
	}
	assert.True(t, userIDFound, "user_id attribute not found in span")
	assert.True(t, roleFound, "user_role attribute not found in span")
}

func TestSpanErrorMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(t *testing.T, status int) sdktrace.ReadOnlySpan {
		t.Helper()
		sr := setupTestTracer(t)

		router := gin.New()
		router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
		router.Use(SpanErrorMarker())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(status, gin.H{})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code)

		span := findSpan(sr.Ended(), "GET /test")
		require.NotNil(t, span)
		return span
	}

	t.Run("404 marks the span", func(t *testing.T) {
		span := serve(t, http.StatusNotFound)
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "Not Found", span.Status().Description)
	})

	t.Run("403 marks the span", func(t *testing.T) {
		span := serve(t, http.StatusForbidden)
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "Forbidden", span.Status().Description)
	})

	t.Run("500 marks the span", func(t *testing.T) {
		span := serve(t, http.StatusInternalServerError)
		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("200 leaves the span alone", func(t *testing.T) {
		span := serve(t, http.StatusOK)
		assert.NotEqual(t, codes.Error, span.Status().Code)
	})
}

func TestSpanRequestIDTruncatesLongHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"length": len(spanRequestID(c))})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 300))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"length":128`)
}
