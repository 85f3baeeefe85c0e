package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsRouter(t *testing.T, skipRoutes ...string) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("cachevault_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "cachevault_test", skipRoutes...))
	router.GET("/v1/entries/:namespace/:key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"key": c.Param("key")})
	})
	router.DELETE("/v1/entries/:namespace/:key", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return router, provider
}

func serve(router *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestHTTPMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	router, provider := newMetricsRouter(t)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/entries/default/db"))
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/entries/staging/api-token"))
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/v1/entries/default/db"))

	body := scrape(t, provider)
	assert.Contains(t, body, `route="/v1/entries/:namespace/:key"`)
	assert.Contains(t, body, `status_code="204"`)
	assert.NotContains(t, body, "api-token")
	assert.NotContains(t, body, "staging")
}

func TestHTTPMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	router, provider := newMetricsRouter(t)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/secret/path/guess"))

	body := scrape(t, provider)
	assert.Contains(t, body, `route="unmatched"`)
	assert.NotContains(t, body, "/secret/path/guess")
}

func TestHTTPMetricsMiddleware_SkipsRoutes(t *testing.T) {
	router, provider := newMetricsRouter(t, "/health")

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health"))

	assert.NotContains(t, scrape(t, provider), `route="/health"`)
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "/v1/entries/:namespace/:key", expected: "/v1/entries/:namespace/:key"},
		{input: "", expected: unmatchedRoute},
		{input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
