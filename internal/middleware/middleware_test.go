package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type staticValidator map[string]string

func (v staticValidator) ValidateToken(token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

func TestAuthentication(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserID(r)
	})
	h := Authentication(staticValidator{"good": "user-1"}, zerolog.Nop())(next)

	tests := []struct {
		header string
		code   int
		user   string
	}{
		{"", http.StatusUnauthorized, ""},
		{"good", http.StatusUnauthorized, ""},
		{"Bearer bad", http.StatusUnauthorized, ""},
		{"Bearer good", http.StatusOK, "user-1"},
	}
	for _, tt := range tests {
		seen = ""
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, tt.code, rec.Code, tt.header)
		assert.Equal(t, tt.user, seen, tt.header)
	}
}

func TestGetUserIDWithoutAuthentication(t *testing.T) {
	_, ok := GetUserID(httptest.NewRequest("GET", "/", nil))
	assert.False(t, ok)
}

func TestErrorHandlingRecoversPanics(t *testing.T) {
	h := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiterIsPerClient(t *testing.T) {
	h := NewRateLimiter(0, 1).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(addr string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Now()
	rl := NewRateLimiter(0, 1)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock

	for i := 0; i < 100; i++ {
		rl.limiterFor(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Len(t, rl.clients, 100)

	clock = clock.Add(clientIdleTTL / 2)
	rl.limiterFor("10.0.1.1")
	assert.Len(t, rl.clients, 101)

	clock = clock.Add(clientIdleTTL / 2)
	rl.limiterFor("10.0.1.2")
	assert.Len(t, rl.clients, 2)
	assert.Contains(t, rl.clients, "10.0.1.1")

	// an evicted client starts with a fresh bucket
	assert.True(t, rl.limiterFor("10.0.0.1").Allow())
}

func TestRequestValidation(t *testing.T) {
	h := RequestValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		method      string
		contentType string
		code        int
	}{
		{"POST", "", http.StatusBadRequest},
		{"POST", "text/plain", http.StatusBadRequest},
		{"POST", "application/json", http.StatusOK},
		{"POST", "application/json; charset=utf-8", http.StatusOK},
		{"GET", "", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/", nil)
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.code, rec.Code, "%s %q", tt.method, tt.contentType)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var id string
	h := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetRequestID(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", id)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggingGeneratesRequestID(t *testing.T) {
	h := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}
