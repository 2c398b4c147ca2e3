package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// accountKey is the context key for the authenticated account.
const accountKey ctxKey = "account"

// GetAccount returns the authenticated account from context.
// Returns 401 error if the request is not authenticated.
func GetAccount(ctx context.Context) (*domain.Account, error) {
	account, ok := ctx.Value(accountKey).(*domain.Account)
	if !ok || account == nil {
		return nil, huma.Error401Unauthorized("Authentication required")
	}
	return account, nil
}

// setAccount stores the account in context.
func setAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores
// the account in context. If no token is present or it is invalid, the
// request continues without an account; handlers use GetAccount to reject it.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			account, err := auth.VerifyToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setAccount(r.Context(), account)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
