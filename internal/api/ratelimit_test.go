package api

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_LimitsPrefixOnly(t *testing.T) {
	// One request allowed, no refill within the test.
	limiter := NewRateLimiter(1, time.Hour, 1)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, authRateLimitPrefix, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.1:55555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// First auth request passes, second is throttled.
	assert.Equal(t, http.StatusOK, do("/api/v1/auth/login").Code)
	throttled := do("/api/v1/auth/login")
	assert.Equal(t, http.StatusTooManyRequests, throttled.Code)

	// The 429 body is a valid envelope.
	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(throttled.Body.Bytes(), &envelope))
	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)

	// Paths outside the prefix are never limited.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do("/api/v1/items").Code)
	}
}

func TestRateLimitMiddleware_KeyedByClientIP(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour, 1)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, authRateLimitPrefix, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:2222").Code, "same IP, different port")
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111").Code, "a different client is unaffected")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.10:43210",
			want:       "192.168.1.10",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			want:       "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
