package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "https://example.com", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "enabled with only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "enabled with only malformed origins", enabled: true, origins: "example.com", wantNil: true},
		{name: "comma separated origins", enabled: true, origins: "https://app.example.com,https://admin.example.com"},
		{name: "origins with whitespace", enabled: true, origins: " https://app.example.com , https://admin.example.com "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, discardLogger())
			if tt.wantNil {
				assert.Nil(t, middleware)
				return
			}
			assert.NotNil(t, middleware)
		})
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantOrigins  []string
		wantRejected []string
	}{
		{name: "empty", raw: ""},
		{
			name:        "trims whitespace",
			raw:         " https://app.example.com , https://admin.example.com ",
			wantOrigins: []string{"https://app.example.com", "https://admin.example.com"},
		},
		{
			name:        "trailing separator and slash",
			raw:         "https://app.example.com/,",
			wantOrigins: []string{"https://app.example.com"},
		},
		{name: "wildcard", raw: "*", wantOrigins: []string{"*"}},
		{
			name:         "missing scheme",
			raw:          "app.example.com,http://localhost:3000",
			wantOrigins:  []string{"http://localhost:3000"},
			wantRejected: []string{"app.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origins, rejected := parseOrigins(tt.raw)
			assert.Equal(t, tt.wantOrigins, origins)
			assert.Equal(t, tt.wantRejected, rejected)
		})
	}
}

func newCORSRouter(enabled bool) *gin.Engine {
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, "https://app.example.com", discardLogger()); middleware != nil {
		router.Use(middleware)
	}
	router.GET("/v1/entries/:namespace/:key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.PUT("/v1/entries/:namespace/:key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestCORSIntegration_HeadersAddedWhenEnabled(t *testing.T) {
	router := newCORSRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/entries/default/db", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_NoHeadersWhenDisabled(t *testing.T) {
	router := newCORSRouter(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/entries/default/db", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_PreflightRequestHandled(t *testing.T) {
	router := newCORSRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/entries/default/db", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
