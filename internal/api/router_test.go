package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        "test",
		RateLimitRPS:       1,
		RateLimitBurst:     3,
		CORSAllowedOrigins: []string{"*"},
		CodeMusicMaxBytes:  1024,
	}
}

func TestSetupRouter_Routes(t *testing.T) {
	router := SetupRouter(nil, testConfig(), nil, "test")

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/theory/keys", "", http.StatusOK},
		{http.MethodGet, "/api/v1/history", "", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.RemoteAddr = "198.51.100.7:5000"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetupRouter_CodeMusicSizeLimit(t *testing.T) {
	router := SetupRouter(nil, testConfig(), nil, "test")

	body := `{"code":"` + string(bytes.Repeat([]byte("x"), 2048)) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/code-to-music", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupRouter_RateLimitsAPI(t *testing.T) {
	router := SetupRouter(nil, testConfig(), nil, "test")

	var last *httptest.ResponseRecorder
	for range 4 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/theory/genres", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	// Health sits outside the limiter
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
