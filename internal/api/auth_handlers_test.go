package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": "frontdesk",
		"password": "lend-me-a-book",
		"role":     "ADMIN",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	account := decodeJSON[AccountResponse](t, resp)
	assert.Equal(t, "frontdesk", account.Username)
	assert.Equal(t, domain.AccountRoleAdmin, account.Role)
	assert.NotEmpty(t, account.ID)
	assert.NotContains(t, resp.Body.String(), "password")

	resp = ts.api.Post("/api/auth/login", map[string]any{
		"username": "frontdesk",
		"password": "lend-me-a-book",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	login := decodeJSON[LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	// The new token works on protected routes.
	resp = ts.api.Get("/api/books", "Authorization: Bearer "+login.Token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": "volunteer",
		"password": "shelving-books",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, domain.AccountRoleUser, decodeJSON[AccountResponse](t, resp).Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": "Librarian",
		"password": "another-password",
	})
	requireAPIError(t, resp, http.StatusConflict, "ALREADY_EXISTS")
}

func TestRegister_Validation(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("short password", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/register", map[string]any{
			"username": "shorty",
			"password": "short",
		})
		apiErr := requireAPIError(t, resp, http.StatusBadRequest, "VALIDATION")
		assert.Contains(t, apiErr.Details, "password")
	})

	t.Run("missing username", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/register", map[string]any{
			"password": "long-enough-password",
		})
		requireAPIError(t, resp, http.StatusBadRequest, "VALIDATION")
	})

	t.Run("unknown role", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/register", map[string]any{
			"username": "intruder",
			"password": "long-enough-password",
			"role":     "ROOT",
		})
		requireAPIError(t, resp, http.StatusBadRequest, "VALIDATION")
	})
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "librarian", "wrong-password"},
		{"unknown user", "nobody", "correct-horse-battery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/auth/login", map[string]any{
				"username": tt.username,
				"password": tt.password,
			})
			apiErr := requireAPIError(t, resp, http.StatusUnauthorized, "INVALID_CREDENTIALS")
			assert.Equal(t, "invalid username or password", apiErr.Message)
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServerWithOptions(t, Options{
		AllowedOrigins: []string{"*"},
		AuthRateLimit:  1,
		AuthRateBurst:  2,
	})

	body := map[string]any{"username": "librarian", "password": "wrong-password"}
	forwarded := "X-Forwarded-For: 203.0.113.7"

	for range 2 {
		resp := ts.api.Post("/api/auth/login", forwarded, body)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	}

	resp := ts.api.Post("/api/auth/login", forwarded, body)
	requireAPIError(t, resp, http.StatusTooManyRequests, "RATE_LIMITED")

	// Another client has its own allowance.
	resp = ts.api.Post("/api/auth/login", "X-Forwarded-For: 198.51.100.2", body)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
