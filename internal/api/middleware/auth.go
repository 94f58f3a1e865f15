package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cloo-solutions/chairside/internal/api"
	"github.com/cloo-solutions/chairside/internal/domain"
)

type contextKey string

const PrincipalKey contextKey = "principal"

type AuthValidator interface {
	ValidateAPIKey(ctx context.Context, token string) (*domain.Principal, error)
}

func APIKeyAuth(validator AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(w, r)
			if !ok {
				return
			}

			principal, err := validator.ValidateAPIKey(r.Context(), token)
			if err != nil {
				if domain.CodeOf(err) == domain.ErrCodeUnauthorized || domain.CodeOf(err) == domain.ErrCodeNotFound {
					api.Error(w, http.StatusUnauthorized, "invalid api key")
					return
				}
				api.HandleError(w, r, err)
				return
			}

			setRequestShopID(r.Context(), principal.ShopID)
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminToken guards operator routes with a static bearer token.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := bearerToken(w, r)
			if !ok {
				return
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				api.Error(w, http.StatusUnauthorized, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		api.Error(w, http.StatusUnauthorized, "missing authorization header")
		return "", false
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		api.Error(w, http.StatusUnauthorized, "invalid authorization format")
		return "", false
	}

	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// GetPrincipal returns the authenticated caller, or nil.
func GetPrincipal(ctx context.Context) *domain.Principal {
	principal, _ := ctx.Value(PrincipalKey).(*domain.Principal)
	return principal
}

func GetShopID(ctx context.Context) string {
	if principal := GetPrincipal(ctx); principal != nil {
		return principal.ShopID
	}
	return ""
}
