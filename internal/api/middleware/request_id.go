package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	RequestIDKey contextKey = "request_id"
	scopeKey     contextKey = "request_scope"
)

// requestScope is shared by every middleware layer of one request. Auth fills
// it; outer layers read it after the chain returns.
type requestScope struct {
	shopID string
}

// RequestID assigns the request id and opens the per-request scope. It must
// be the outermost middleware.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = context.WithValue(ctx, scopeKey, &requestScope{})
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

// RequestShopID returns the shop authenticated anywhere in this request's
// chain, or "" when auth has not succeeded.
func RequestShopID(ctx context.Context) string {
	if scope, ok := ctx.Value(scopeKey).(*requestScope); ok {
		return scope.shopID
	}
	return ""
}

func setRequestShopID(ctx context.Context, shopID string) {
	if scope, ok := ctx.Value(scopeKey).(*requestScope); ok {
		scope.shopID = shopID
	}
}
