package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := requestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generates an ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(requestIDHeader))
	})

	t.Run("keeps a client UUID", func(t *testing.T) {
		clientID := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, clientID)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, clientID, seen)
	})

	t.Run("replaces junk", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "<script>")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		realIP       string
		remoteAddr   string
		want         string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:5000", "203.0.113.7"},
		{"real ip", "", "198.51.100.2", "10.0.0.2:5000", "198.51.100.2"},
		{"remote addr", "", "", "192.0.2.1:41234", "192.0.2.1"},
		{"ipv6 remote addr", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clientIP(tt.forwardedFor, tt.realIP, tt.remoteAddr))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.9:1234"
	req.Header.Set("X-Real-IP", "198.51.100.4")

	assert.Equal(t, "198.51.100.4", getClientIP(req))
}

func TestParseDueDate(t *testing.T) {
	got, err := parseDueDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDueDate("2026-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 5, 1, 23, 59, 59, 999999999, time.UTC), *got)

	got, err = parseDueDate("2026-05-01T09:30:00+02:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC)))

	_, err = parseDueDate("01/05/2026")
	require.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer v4.local.abc")
	assert.True(t, ok)
	assert.Equal(t, "v4.local.abc", token)

	token, ok = bearerToken("bearer v4.local.abc")
	assert.True(t, ok)
	assert.Equal(t, "v4.local.abc", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		_, ok := bearerToken(header)
		assert.False(t, ok, header)
	}
}
